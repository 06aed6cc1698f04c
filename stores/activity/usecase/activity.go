package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	bCtx "github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/base/log"
	"github.com/rebooked/goapi/domain"
	"github.com/rebooked/goapi/domain/activity"
	"github.com/rebooked/goapi/service/aptos"
)

const defaultHistoryLimit = 25

type ActivityUseCaseCfg struct {
	Client aptos.Client
}

type impl struct {
	client aptos.Client
}

func New(cfg *ActivityUseCaseCfg) activity.Usecase {
	return &impl{client: cfg.Client}
}

// GetMarketplaceEvents pulls the account's recent transaction history and
// derives the marketplace feed from it. A fetch failure degrades to an empty
// feed rather than an error; the next polling cycle retries.
func (im *impl) GetMarketplaceEvents(ctx bCtx.Ctx, address domain.Address, limit int) ([]activity.MarketplaceEvent, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	txs, err := im.client.GetAccountTransactions(ctx, address, limit)
	if err != nil {
		ctx.WithFields(log.Fields{
			"address": address,
			"err":     err,
		}).Error("fetch account transactions failed")
		return []activity.MarketplaceEvent{}, nil
	}

	return DeriveEvents(toTransactions(txs)), nil
}

func toTransactions(txs []aptos.AccountTransaction) []activity.Transaction {
	out := make([]activity.Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, activity.Transaction{
			Hash:      tx.Hash,
			Sender:    tx.Sender,
			Success:   tx.Success,
			Timestamp: tx.Timestamp,
			Version:   domain.TxVersion(tx.Version),
			GasUsed:   tx.GasUsed,
			Function:  tx.Function,
			Arguments: tx.Arguments,
		})
	}
	return out
}

// DeriveEvents rebuilds the marketplace feed from raw history. Failed
// transactions and transactions without an entry function contribute
// nothing; unrecognized entry functions are skipped. Input order carries
// through to the output.
func DeriveEvents(txs []activity.Transaction) []activity.MarketplaceEvent {
	events := make([]activity.MarketplaceEvent, 0, len(txs))
	mintCount := 0

	for _, tx := range txs {
		if !tx.Success || tx.Function == "" {
			continue
		}

		ev := activity.MarketplaceEvent{
			Hash:      tx.Hash,
			Timestamp: tx.Timestamp,
			From:      tx.Sender,
		}

		switch entryFunctionName(tx.Function) {
		case "mint_booking":
			mintCount++
			ev.Kind = activity.KindMint
			ev.To = argAddress(tx.Arguments, 0)
			ev.Price = argApt(tx.Arguments, 2)
			ev.TokenName = fmt.Sprintf("Booking #%d", mintCount)
		case "list_for_resale":
			ev.Kind = activity.KindList
			ev.Price = argApt(tx.Arguments, 1)
		case "buy_resale":
			ev.Kind = activity.KindBuy
		case "cancel_listing":
			ev.Kind = activity.KindCancel
		default:
			continue
		}

		events = append(events, ev)
	}
	return events
}

func entryFunctionName(fqn string) string {
	parts := strings.Split(fqn, "::")
	return parts[len(parts)-1]
}

func argAddress(args []string, idx int) domain.Address {
	if idx >= len(args) {
		return ""
	}
	return domain.Address(args[idx])
}

func argApt(args []string, idx int) *decimal.Decimal {
	if idx >= len(args) {
		return nil
	}
	octas, err := domain.ParseOctas(args[idx])
	if err != nil {
		return nil
	}
	apt := octas.ToApt()
	return &apt
}

// SortEvents orders the feed by timestamp, stable for equal stamps
func SortEvents(events []activity.MarketplaceEvent, dir domain.SortDir) {
	sort.SliceStable(events, func(i, j int) bool {
		if dir == domain.SortDirAsc {
			return events[i].Timestamp < events[j].Timestamp
		}
		return events[i].Timestamp > events[j].Timestamp
	})
}

// NewEventsSince returns the prefix of a timestamp-descending window that
// is strictly newer than the head hash. An empty head primes the pointer
// without reporting anything; a head that fell out of the window means the
// whole window is new.
func NewEventsSince(head domain.TxHash, events []activity.MarketplaceEvent) []activity.MarketplaceEvent {
	if head == "" || len(events) == 0 {
		return nil
	}
	for i, ev := range events {
		if ev.Hash == head {
			return events[:i]
		}
	}
	return events
}

// FilterByAddress keeps events whose from or to address contains the query,
// case-insensitively
func FilterByAddress(events []activity.MarketplaceEvent, query string) []activity.MarketplaceEvent {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return events
	}

	out := make([]activity.MarketplaceEvent, 0, len(events))
	for _, ev := range events {
		if strings.Contains(strings.ToLower(string(ev.From)), query) ||
			strings.Contains(strings.ToLower(string(ev.To)), query) {
			out = append(out, ev)
		}
	}
	return out
}
