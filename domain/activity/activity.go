package activity

import (
	"github.com/shopspring/decimal"

	"github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/domain"
)

// Transaction is one raw user transaction from the account history,
// timestamps already converted to epoch seconds
type Transaction struct {
	Hash      domain.TxHash    `json:"hash"`
	Sender    domain.Address   `json:"sender"`
	Success   bool             `json:"success"`
	Timestamp int64            `json:"timestamp"`
	Version   domain.TxVersion `json:"version"`
	GasUsed   uint64           `json:"gasUsed"`
	// Function is the fully qualified entry function, empty for
	// non-entry-function transactions
	Function  string   `json:"function"`
	Arguments []string `json:"arguments"`
}

type EventKind string

const (
	KindMint    EventKind = "mint"
	KindList    EventKind = "list"
	KindBuy     EventKind = "buy"
	KindRoyalty EventKind = "royalty"
	KindCancel  EventKind = "cancel"
)

// MarketplaceEvent is a derived, immutable record. The feed is rebuilt on
// every refresh cycle; events are never mutated in place.
type MarketplaceEvent struct {
	Kind          EventKind        `json:"kind"`
	Hash          domain.TxHash    `json:"hash"`
	Timestamp     int64            `json:"timestamp"`
	From          domain.Address   `json:"from"`
	To            domain.Address   `json:"to,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	RoyaltyAmount *decimal.Decimal `json:"royaltyAmount,omitempty"`
	TokenName     string           `json:"tokenName,omitempty"`
}

// Notification is one inbox entry derived from a novel marketplace event
type Notification struct {
	Id        string           `json:"id"`
	Message   string           `json:"message"`
	Event     MarketplaceEvent `json:"event"`
	CreatedAt int64            `json:"createdAt"`
}

type Usecase interface {
	GetMarketplaceEvents(c ctx.Ctx, address domain.Address, limit int) ([]MarketplaceEvent, error)
}

// Notifier keeps the head pointer and the bounded notification inbox across
// polling cycles
type Notifier interface {
	Observe(c ctx.Ctx, events []MarketplaceEvent)
	Notifications(c ctx.Ctx) []Notification
	Dismiss(c ctx.Ctx, id string) bool
	ClearAll(c ctx.Ctx)
	Unread(c ctx.Ctx) int
}
