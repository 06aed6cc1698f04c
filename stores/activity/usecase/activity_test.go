package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	bCtx "github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/domain"
	"github.com/rebooked/goapi/domain/activity"
	"github.com/rebooked/goapi/service/aptos"
	"github.com/rebooked/goapi/service/aptos/mocks"
)

const marketFn = "0xcafe::marketplace"

func tx(hash string, fn string, success bool, ts int64, args ...string) activity.Transaction {
	fqn := ""
	if fn != "" {
		fqn = fmt.Sprintf("%s::%s", marketFn, fn)
	}
	return activity.Transaction{
		Hash:      domain.TxHash(hash),
		Sender:    "0xsender",
		Success:   success,
		Timestamp: ts,
		Function:  fqn,
		Arguments: args,
	}
}

func TestDeriveEventsSkipsFailedAndFunctionless(t *testing.T) {
	req := require.New(t)

	events := DeriveEvents([]activity.Transaction{
		tx("0xa", "mint_booking", false, 10, "0xbuyer", "uri", "100000000"),
		tx("0xb", "", true, 20),
		tx("0xc", "transfer", true, 30),
	})
	req.Empty(events)
}

func TestDeriveEventsMint(t *testing.T) {
	req := require.New(t)

	events := DeriveEvents([]activity.Transaction{
		tx("0xa", "mint_booking", true, 10, "0xbuyer", "uri", "100000000"),
		tx("0xb", "list_for_resale", true, 20, "0xtok", "500000000"),
		tx("0xc", "mint_booking", true, 30, "0xother", "uri", "200000000"),
	})
	req.Len(events, 3)

	req.Equal(activity.KindMint, events[0].Kind)
	req.Equal(domain.Address("0xbuyer"), events[0].To)
	req.Equal("Booking #1", events[0].TokenName)
	req.Equal("1", events[0].Price.String())

	// the mint counter tracks mints only, not all events in between
	req.Equal("Booking #2", events[2].TokenName)
	req.Equal("2", events[2].Price.String())
}

func TestDeriveEventsListBuyCancel(t *testing.T) {
	req := require.New(t)

	events := DeriveEvents([]activity.Transaction{
		tx("0xa", "list_for_resale", true, 10, "0xtok", "500000000"),
		tx("0xb", "buy_resale", true, 20, "0xtok"),
		tx("0xc", "cancel_listing", true, 30, "0xtok"),
	})
	req.Len(events, 3)
	req.Equal(activity.KindList, events[0].Kind)
	req.Equal("5", events[0].Price.String())
	req.Equal(activity.KindBuy, events[1].Kind)
	req.Nil(events[1].Price)
	req.Equal(activity.KindCancel, events[2].Kind)
}

func TestSortEvents(t *testing.T) {
	req := require.New(t)

	events := []activity.MarketplaceEvent{
		{Hash: "0xa", Timestamp: 10},
		{Hash: "0xb", Timestamp: 30},
		{Hash: "0xc", Timestamp: 20},
	}

	SortEvents(events, domain.SortDirDesc)
	req.Equal(domain.TxHash("0xb"), events[0].Hash)
	req.Equal(domain.TxHash("0xa"), events[2].Hash)

	SortEvents(events, domain.SortDirAsc)
	req.Equal(domain.TxHash("0xa"), events[0].Hash)
	req.Equal(domain.TxHash("0xb"), events[2].Hash)
}

func TestNewEventsSince(t *testing.T) {
	req := require.New(t)

	window := []activity.MarketplaceEvent{
		{Hash: "0xc", Timestamp: 30},
		{Hash: "0xb", Timestamp: 20},
		{Hash: "0xa", Timestamp: 10},
	}

	req.Nil(NewEventsSince("", window))
	req.Empty(NewEventsSince("0xc", window))

	novel := NewEventsSince("0xa", window)
	req.Len(novel, 2)
	req.Equal(domain.TxHash("0xc"), novel[0].Hash)

	// head aged out of the window
	req.Len(NewEventsSince("0xgone", window), 3)
}

func TestFilterByAddress(t *testing.T) {
	req := require.New(t)

	events := []activity.MarketplaceEvent{
		{Hash: "0xa", From: "0xAAAA"},
		{Hash: "0xb", From: "0xbbbb", To: "0xaaaa"},
		{Hash: "0xc", From: "0xcccc"},
	}

	out := FilterByAddress(events, "0xAA")
	req.Len(out, 2)

	req.Len(FilterByAddress(events, ""), 3)
	req.Empty(FilterByAddress(events, "0xdead"))
}

func TestGetMarketplaceEvents(t *testing.T) {
	req := require.New(t)
	c := bCtx.Background()

	client := &mocks.Client{}
	defer client.AssertExpectations(t)

	client.On("GetAccountTransactions", mock.Anything, domain.Address("0xcafe"), 25).Return([]aptos.AccountTransaction{
		{
			Hash:      "0xa",
			Sender:    "0xcafe",
			Success:   true,
			Timestamp: 10,
			Function:  marketFn + "::mint_booking",
			Arguments: []string{"0xbuyer", "uri", "300000000"},
		},
	}, nil).Once()

	uc := New(&ActivityUseCaseCfg{Client: client})
	events, err := uc.GetMarketplaceEvents(c, "0xcafe", 0)
	req.NoError(err)
	req.Len(events, 1)
	req.Equal(activity.KindMint, events[0].Kind)
	req.Equal("3", events[0].Price.String())
}

func TestGetMarketplaceEventsFetchFailure(t *testing.T) {
	req := require.New(t)
	c := bCtx.Background()

	client := &mocks.Client{}
	defer client.AssertExpectations(t)
	client.On("GetAccountTransactions", mock.Anything, domain.Address("0xcafe"), 5).Return(nil, xerrors.New("node down")).Once()

	uc := New(&ActivityUseCaseCfg{Client: client})
	events, err := uc.GetMarketplaceEvents(c, "0xcafe", 5)
	req.NoError(err)
	req.Empty(events)
}
