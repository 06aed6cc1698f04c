package usecase

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	bCtx "github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/domain"
	"github.com/rebooked/goapi/domain/activity"
)

const inboxCap = 10

type notifier struct {
	mu    sync.RWMutex
	head  domain.TxHash
	inbox []activity.Notification

	now func() time.Time
}

func NewNotifier() activity.Notifier {
	return &notifier{now: time.Now}
}

// Observe ingests one polling window of events. The first observation only
// primes the head pointer; later observations turn the prefix newer than
// the head into inbox entries, newest first.
func (n *notifier) Observe(ctx bCtx.Ctx, events []activity.MarketplaceEvent) {
	window := make([]activity.MarketplaceEvent, len(events))
	copy(window, events)
	SortEvents(window, domain.SortDirDesc)

	n.mu.Lock()
	defer n.mu.Unlock()

	if len(window) == 0 {
		return
	}

	novel := NewEventsSince(n.head, window)
	n.head = window[0].Hash

	if len(novel) == 0 {
		return
	}

	entries := make([]activity.Notification, 0, len(novel))
	for _, ev := range novel {
		entries = append(entries, activity.Notification{
			Id:        uuid.NewString(),
			Message:   notificationMessage(ev),
			Event:     ev,
			CreatedAt: n.now().Unix(),
		})
	}

	n.inbox = append(entries, n.inbox...)
	if len(n.inbox) > inboxCap {
		n.inbox = n.inbox[:inboxCap]
	}
}

func notificationMessage(ev activity.MarketplaceEvent) string {
	switch ev.Kind {
	case activity.KindMint:
		return fmt.Sprintf("New NFT minted by %s", ev.From)
	case activity.KindList:
		if ev.Price != nil {
			return fmt.Sprintf("NFT listed for %s APT", ev.Price.String())
		}
		return "NFT listed for resale"
	case activity.KindBuy:
		return fmt.Sprintf("NFT purchased by %s", ev.From)
	case activity.KindRoyalty:
		if ev.RoyaltyAmount != nil {
			return fmt.Sprintf("Royalty payment of %s APT", ev.RoyaltyAmount.String())
		}
		return "Royalty payment received"
	case activity.KindCancel:
		return "Listing cancelled"
	}
	return "Marketplace activity"
}

func (n *notifier) Notifications(ctx bCtx.Ctx) []activity.Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]activity.Notification, len(n.inbox))
	copy(out, n.inbox)
	return out
}

func (n *notifier) Dismiss(ctx bCtx.Ctx, id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, entry := range n.inbox {
		if entry.Id == id {
			n.inbox = append(n.inbox[:i], n.inbox[i+1:]...)
			return true
		}
	}
	return false
}

func (n *notifier) ClearAll(ctx bCtx.Ctx) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.inbox = nil
}

func (n *notifier) Unread(ctx bCtx.Ctx) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.inbox)
}
