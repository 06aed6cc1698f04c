package market

import (
	"github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/domain"
)

// Entry function names of the resale marketplace contract. Event derivation
// keys off the same table.
const (
	FnMintBooking   = "mint_booking"
	FnListForResale = "list_for_resale"
	FnBuyResale     = "buy_resale"
	FnCancelListing = "cancel_listing"
)

// EntryFunctionPayload mirrors the shape wallets sign and submit: fully
// qualified function plus string-encoded positional arguments
type EntryFunctionPayload struct {
	Function          string   `json:"function"`
	TypeArguments     []string `json:"typeArguments"`
	FunctionArguments []string `json:"functionArguments"`
}

// MintRequest carries the mint_booking form. Validation happens before any
// payload is built; nothing is submitted from here.
type MintRequest struct {
	Buyer          domain.Address `json:"buyer" validate:"required"`
	Name           string         `json:"name" validate:"required"`
	Description    string         `json:"description"`
	Category       string         `json:"category" validate:"required"`
	Location       string         `json:"location"`
	CheckIn        string         `json:"checkIn" validate:"required"`
	CheckOut       string         `json:"checkOut" validate:"required"`
	CheckOutEpoch  int64          `json:"checkOutEpoch" validate:"required,gt=0"`
	Guests         int            `json:"guests" validate:"gte=1"`
	ImageUrl       string         `json:"imageUrl"`
	OriginalPrice  string         `json:"originalPrice" validate:"required"`
	RoyaltyRateBps int            `json:"royaltyRateBps" validate:"gte=5,lte=10"`
}

type ListRequest struct {
	TokenAddress domain.Address `json:"tokenAddress" validate:"required"`
	Price        string         `json:"price" validate:"required"`
}

type BuyRequest struct {
	TokenAddress domain.Address `json:"tokenAddress" validate:"required"`
}

type CancelRequest struct {
	TokenAddress domain.Address `json:"tokenAddress" validate:"required"`
}

type Usecase interface {
	BuildMintPayload(ctx.Ctx, *MintRequest) (*EntryFunctionPayload, error)
	BuildListPayload(ctx.Ctx, *ListRequest) (*EntryFunctionPayload, error)
	BuildBuyPayload(ctx.Ctx, *BuyRequest) (*EntryFunctionPayload, error)
	BuildCancelPayload(ctx.Ctx, *CancelRequest) (*EntryFunctionPayload, error)
}
