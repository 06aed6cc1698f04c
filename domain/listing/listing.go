package listing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/domain"
)

type Category string

const (
	CategoryHotel Category = "hotel"
	CategoryEvent Category = "event"
	CategoryTrain Category = "train"
	CategoryMovie Category = "movie"
	// CategoryAll is the filter pass-through sentinel, never stored on a listing
	CategoryAll Category = "all"
)

func (c Category) IsValid() bool {
	switch Category(strings.ToLower(string(c))) {
	case CategoryHotel, CategoryEvent, CategoryTrain, CategoryMovie:
		return true
	}
	return false
}

const (
	DefaultTitle    = "Booking NFT"
	DefaultCategory = CategoryHotel
)

// SaleState is the positional get_listing view response, decoded
type SaleState struct {
	IsActive       bool           `json:"isActive"`
	Owner          domain.Address `json:"owner"`
	Price          domain.Octas   `json:"price"`
	OriginalBuyer  domain.Address `json:"originalBuyer"`
	RoyaltyRateBps int            `json:"royaltyRateBps"`
}

// BookingMetadata is the positional get_booking_metadata view response, decoded.
// Metadata is fixed at mint so lookups are cacheable.
type BookingMetadata struct {
	OriginalPrice  domain.Octas `json:"originalPrice"`
	Uri            string       `json:"uri"`
	ResaleCount    int          `json:"resaleCount"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Category       string       `json:"category"`
	Location       string       `json:"location"`
	CheckIn        string       `json:"checkIn"`
	CheckOut       string       `json:"checkOut"`
	Guests         int          `json:"guests"`
	CheckOutExpiry int64        `json:"checkOutExpiry"`
}

// Listing is the hydrated view of one token's sale state, rebuilt from the
// chain on every fetch cycle and never stored locally
type Listing struct {
	TokenAddress   domain.Address  `json:"tokenAddress"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	ImageUrl       string          `json:"imageUrl"`
	Category       Category        `json:"category"`
	Location       string          `json:"location"`
	OriginalPrice  decimal.Decimal `json:"originalPrice"`
	ResalePrice    decimal.Decimal `json:"resalePrice"`
	RoyaltyRateBps int             `json:"royaltyRateBps"`
	Seller         domain.Address  `json:"seller"`
	OriginalBuyer  domain.Address  `json:"originalBuyer"`
	Owner          domain.Address  `json:"owner"`
	ResaleCount    int             `json:"resaleCount"`
	IsActive       bool            `json:"isActive"`
	CheckIn        string          `json:"checkIn"`
	CheckOut       string          `json:"checkOut"`
	CheckOutExpiry int64           `json:"checkOutExpiry"`
	Guests         int             `json:"guests"`
}

// IsExpired reports whether the booking window has passed at the given
// wall-clock time. Expiry is recomputed on every read, never stored.
func (l *Listing) IsExpired(nowEpoch int64) bool {
	return l.CheckOutExpiry > 0 && l.CheckOutExpiry < nowEpoch
}

type SortKey string

const (
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	// SortDateSoon compares the check-in display string lexically. That is
	// only chronological for zero-padded ISO-like layouts; free-form strings
	// sort unreliably.
	SortDateSoon SortKey = "date-soon"
	SortRecent   SortKey = "recent"
)

// FilterOptions drives the consumer-side filter/sort pipeline
type FilterOptions struct {
	SearchText     string
	Category       Category
	IncludeExpired bool
	SortBy         SortKey
}

// Stats summarizes an account's portfolio
type Stats struct {
	TotalTokens    int             `json:"totalTokens"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	ActiveListings int             `json:"activeListings"`
}

// ChainRepo reads marketplace state from the contract's view functions
type ChainRepo interface {
	GetActiveListingAddresses(ctx.Ctx) ([]domain.Address, error)
	GetMintedTokenAddresses(ctx.Ctx) ([]domain.Address, error)
	GetSaleState(ctx.Ctx, domain.Address) (*SaleState, error)
	GetMetadata(ctx.Ctx, domain.Address) (*BookingMetadata, error)
}

type Usecase interface {
	GetActiveListings(ctx.Ctx) ([]Listing, error)
	GetListingsByOwner(ctx.Ctx, domain.Address) ([]Listing, error)
	GetListing(ctx.Ctx, domain.Address) (*Listing, error)
	RefreshSnapshot(ctx.Ctx) error
	GetSnapshot(ctx.Ctx) []Listing
}
