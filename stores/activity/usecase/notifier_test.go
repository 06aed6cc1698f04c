package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	bCtx "github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/domain"
	"github.com/rebooked/goapi/domain/activity"
)

func window(hashes ...string) []activity.MarketplaceEvent {
	events := make([]activity.MarketplaceEvent, 0, len(hashes))
	for i, h := range hashes {
		events = append(events, activity.MarketplaceEvent{
			Kind:      activity.KindCancel,
			Hash:      domain.TxHash(h),
			Timestamp: int64(len(hashes) - i),
		})
	}
	return events
}

func TestNotifierPrimesOnFirstObservation(t *testing.T) {
	req := require.New(t)
	c := bCtx.Background()

	n := NewNotifier()
	n.Observe(c, window("0xb", "0xa"))

	req.Zero(n.Unread(c))
	req.Empty(n.Notifications(c))
}

func TestNotifierReportsNovelPrefix(t *testing.T) {
	req := require.New(t)
	c := bCtx.Background()

	n := NewNotifier()
	n.Observe(c, window("0xb", "0xa"))
	n.Observe(c, window("0xd", "0xc", "0xb", "0xa"))

	got := n.Notifications(c)
	req.Len(got, 2)
	req.Equal(domain.TxHash("0xd"), got[0].Event.Hash)
	req.Equal(domain.TxHash("0xc"), got[1].Event.Hash)
	req.NotEmpty(got[0].Id)
	req.Equal("Listing cancelled", got[0].Message)

	// an unchanged window adds nothing
	n.Observe(c, window("0xd", "0xc", "0xb", "0xa"))
	req.Equal(2, n.Unread(c))
}

func TestNotifierInboxCap(t *testing.T) {
	req := require.New(t)
	c := bCtx.Background()

	n := NewNotifier()
	n.Observe(c, window("0x0"))

	hashes := []string{}
	for i := 20; i > 0; i-- {
		hashes = append(hashes, fmt.Sprintf("0x%d", i))
	}
	hashes = append(hashes, "0x0")
	n.Observe(c, window(hashes...))

	got := n.Notifications(c)
	req.Len(got, 10)
	// newest survives the trim
	req.Equal(domain.TxHash("0x20"), got[0].Event.Hash)
}

func TestNotifierDismissAndClear(t *testing.T) {
	req := require.New(t)
	c := bCtx.Background()

	n := NewNotifier()
	n.Observe(c, window("0xa"))
	n.Observe(c, window("0xc", "0xb", "0xa"))
	req.Equal(2, n.Unread(c))

	got := n.Notifications(c)
	req.True(n.Dismiss(c, got[0].Id))
	req.False(n.Dismiss(c, "not-there"))
	req.Equal(1, n.Unread(c))

	n.ClearAll(c)
	req.Zero(n.Unread(c))
	req.Empty(n.Notifications(c))
}
