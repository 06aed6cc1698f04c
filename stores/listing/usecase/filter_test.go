package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rebooked/goapi/domain"
	"github.com/rebooked/goapi/domain/listing"
)

func mkListing(token string, title string, category listing.Category, price int64) listing.Listing {
	return listing.Listing{
		TokenAddress: domain.Address(token),
		Title:        title,
		Category:     category,
		ResalePrice:  decimal.NewFromInt(price),
		IsActive:     true,
	}
}

func TestFilterSearchText(t *testing.T) {
	req := require.New(t)

	items := []listing.Listing{
		mkListing("0x1", "Grand Hotel Tokyo", listing.CategoryHotel, 5),
		mkListing("0x2", "Concert Pass", listing.CategoryEvent, 3),
	}
	items[1].Location = "Tokyo Dome"

	out := FilterSortListings(items, listing.FilterOptions{SearchText: "tokyo"}, 0)
	req.Len(out, 2)

	out = FilterSortListings(items, listing.FilterOptions{SearchText: "grand"}, 0)
	req.Len(out, 1)
	req.Equal(domain.Address("0x1"), out[0].TokenAddress)

	out = FilterSortListings(items, listing.FilterOptions{SearchText: "nothing"}, 0)
	req.Empty(out)
}

func TestFilterCategory(t *testing.T) {
	req := require.New(t)

	items := []listing.Listing{
		mkListing("0x1", "a", listing.CategoryHotel, 1),
		mkListing("0x2", "b", listing.CategoryEvent, 2),
	}

	out := FilterSortListings(items, listing.FilterOptions{Category: listing.CategoryEvent}, 0)
	req.Len(out, 1)
	req.Equal(domain.Address("0x2"), out[0].TokenAddress)

	out = FilterSortListings(items, listing.FilterOptions{Category: listing.CategoryAll}, 0)
	req.Len(out, 2)
}

func TestFilterCategoryIgnoresCase(t *testing.T) {
	req := require.New(t)

	items := []listing.Listing{
		mkListing("0x1", "a", listing.CategoryHotel, 1),
		mkListing("0x2", "b", listing.CategoryEvent, 2),
	}

	out := FilterSortListings(items, listing.FilterOptions{Category: "Hotel"}, 0)
	req.Len(out, 1)
	req.Equal(domain.Address("0x1"), out[0].TokenAddress)

	out = FilterSortListings(items, listing.FilterOptions{Category: "EVENT"}, 0)
	req.Len(out, 1)
	req.Equal(domain.Address("0x2"), out[0].TokenAddress)

	out = FilterSortListings(items, listing.FilterOptions{Category: "All"}, 0)
	req.Len(out, 2)
}

func TestFilterExpiry(t *testing.T) {
	req := require.New(t)

	now := int64(1_700_000_000)
	fresh := mkListing("0x1", "fresh", listing.CategoryHotel, 1)
	fresh.CheckOutExpiry = now
	stale := mkListing("0x2", "stale", listing.CategoryHotel, 1)
	stale.CheckOutExpiry = now - 1
	open := mkListing("0x3", "open", listing.CategoryHotel, 1)

	items := []listing.Listing{fresh, stale, open}

	out := FilterSortListings(items, listing.FilterOptions{}, now)
	req.Len(out, 2)
	for _, l := range out {
		req.NotEqual(domain.Address("0x2"), l.TokenAddress)
	}

	out = FilterSortListings(items, listing.FilterOptions{IncludeExpired: true}, now)
	req.Len(out, 3)
}

func TestSortByPrice(t *testing.T) {
	req := require.New(t)

	items := []listing.Listing{
		mkListing("0x1", "a", listing.CategoryHotel, 9),
		mkListing("0x2", "b", listing.CategoryHotel, 2),
		mkListing("0x3", "c", listing.CategoryHotel, 5),
	}

	out := FilterSortListings(items, listing.FilterOptions{SortBy: listing.SortPriceLow}, 0)
	req.Equal([]domain.Address{"0x2", "0x3", "0x1"}, tokenOrder(out))

	out = FilterSortListings(items, listing.FilterOptions{SortBy: listing.SortPriceHigh}, 0)
	req.Equal([]domain.Address{"0x1", "0x3", "0x2"}, tokenOrder(out))

	// the input order is untouched
	req.Equal([]domain.Address{"0x1", "0x2", "0x3"}, tokenOrder(items))
}

func TestSortByCheckIn(t *testing.T) {
	req := require.New(t)

	a := mkListing("0x1", "a", listing.CategoryHotel, 1)
	a.CheckIn = "2026-12-01"
	b := mkListing("0x2", "b", listing.CategoryHotel, 1)
	b.CheckIn = "2026-10-15"

	out := FilterSortListings([]listing.Listing{a, b}, listing.FilterOptions{SortBy: listing.SortDateSoon}, 0)
	req.Equal([]domain.Address{"0x2", "0x1"}, tokenOrder(out))
}

func TestSortRecentDefault(t *testing.T) {
	req := require.New(t)

	items := []listing.Listing{
		mkListing("0x0a", "a", listing.CategoryHotel, 1),
		mkListing("0x2", "b", listing.CategoryHotel, 1),
		mkListing("0x10", "c", listing.CategoryHotel, 1),
	}

	// highest token address first, compared numerically not lexically
	out := FilterSortListings(items, listing.FilterOptions{}, 0)
	req.Equal([]domain.Address{"0x10", "0x0a", "0x2"}, tokenOrder(out))
}

func TestSortStableOnTies(t *testing.T) {
	req := require.New(t)

	items := []listing.Listing{
		mkListing("0x1", "first", listing.CategoryHotel, 5),
		mkListing("0x2", "second", listing.CategoryHotel, 5),
	}

	out := FilterSortListings(items, listing.FilterOptions{SortBy: listing.SortPriceLow}, 0)
	req.Equal([]domain.Address{"0x1", "0x2"}, tokenOrder(out))
}

func TestPaginate(t *testing.T) {
	req := require.New(t)

	items := []listing.Listing{
		mkListing("0x1", "a", listing.CategoryHotel, 1),
		mkListing("0x2", "b", listing.CategoryHotel, 1),
		mkListing("0x3", "c", listing.CategoryHotel, 1),
	}

	req.Equal([]domain.Address{"0x2", "0x3"}, tokenOrder(Paginate(items, 1, 2)))
	req.Equal([]domain.Address{"0x3"}, tokenOrder(Paginate(items, 2, 5)))
	req.Empty(Paginate(items, 3, 2))
	req.Empty(Paginate(items, 99, 2))
	req.Len(Paginate(items, 0, 0), 3)
	req.Len(Paginate(items, -1, 2), 2)
}

func TestComputeStats(t *testing.T) {
	req := require.New(t)

	a := mkListing("0x1", "a", listing.CategoryHotel, 1)
	a.OriginalPrice = decimal.NewFromInt(3)
	b := mkListing("0x2", "b", listing.CategoryHotel, 1)
	b.OriginalPrice = decimal.NewFromInt(2)
	b.IsActive = false

	stats := ComputeStats([]listing.Listing{a, b})
	req.Equal(2, stats.TotalTokens)
	req.Equal(1, stats.ActiveListings)
	req.Equal("5", stats.TotalValue.String())
}

func tokenOrder(listings []listing.Listing) []domain.Address {
	out := make([]domain.Address, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.TokenAddress)
	}
	return out
}
