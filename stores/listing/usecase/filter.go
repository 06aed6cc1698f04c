package usecase

import (
	"math/big"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rebooked/goapi/domain/listing"
)

// FilterSortListings applies search, category, expiry and ordering to a
// hydrated slice. The input is never mutated; callers can filter the same
// snapshot concurrently.
func FilterSortListings(listings []listing.Listing, opts listing.FilterOptions, nowEpoch int64) []listing.Listing {
	out := make([]listing.Listing, 0, len(listings))
	search := strings.ToLower(strings.TrimSpace(opts.SearchText))
	category := listing.Category(strings.ToLower(string(opts.Category)))

	for _, l := range listings {
		if search != "" && !matchesSearch(l, search) {
			continue
		}
		if category != "" && category != listing.CategoryAll && l.Category != category {
			continue
		}
		if !opts.IncludeExpired && l.IsExpired(nowEpoch) {
			continue
		}
		out = append(out, l)
	}

	sortListings(out, opts.SortBy)
	return out
}

func matchesSearch(l listing.Listing, search string) bool {
	return strings.Contains(strings.ToLower(l.Title), search) ||
		strings.Contains(strings.ToLower(l.Location), search) ||
		strings.Contains(strings.ToLower(l.Description), search)
}

func sortListings(listings []listing.Listing, key listing.SortKey) {
	switch key {
	case listing.SortPriceLow:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].ResalePrice.LessThan(listings[j].ResalePrice)
		})
	case listing.SortPriceHigh:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].ResalePrice.GreaterThan(listings[j].ResalePrice)
		})
	case listing.SortDateSoon:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].CheckIn < listings[j].CheckIn
		})
	default:
		// newest mint first, by the numeric value of the token address
		sort.SliceStable(listings, func(i, j int) bool {
			return tokenSeq(listings[i]).Cmp(tokenSeq(listings[j])) > 0
		})
	}
}

func tokenSeq(l listing.Listing) *big.Int {
	hex := strings.TrimPrefix(strings.ToLower(string(l.TokenAddress)), "0x")
	n, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		return big.NewInt(0)
	}
	return n
}

// Paginate slices out a bounds-safe window
func Paginate(listings []listing.Listing, offset, limit int) []listing.Listing {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(listings) {
		return []listing.Listing{}
	}
	if limit <= 0 {
		return listings[offset:]
	}
	end := offset + limit
	if end > len(listings) {
		end = len(listings)
	}
	return listings[offset:end]
}

// ComputeStats summarizes an owner's portfolio at original-purchase value
func ComputeStats(listings []listing.Listing) listing.Stats {
	stats := listing.Stats{
		TotalTokens: len(listings),
		TotalValue:  decimal.Zero,
	}
	for _, l := range listings {
		stats.TotalValue = stats.TotalValue.Add(l.OriginalPrice)
		if l.IsActive {
			stats.ActiveListings++
		}
	}
	return stats
}
