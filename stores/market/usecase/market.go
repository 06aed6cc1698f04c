package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	bCtx "github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/domain"
	"github.com/rebooked/goapi/domain/listing"
	"github.com/rebooked/goapi/domain/market"
)

type MarketUseCaseCfg struct {
	ContractAddress domain.Address
	ModuleName      string
}

type impl struct {
	contractAddress domain.Address
	moduleName      string
}

func New(cfg *MarketUseCaseCfg) market.Usecase {
	return &impl{
		contractAddress: cfg.ContractAddress,
		moduleName:      cfg.ModuleName,
	}
}

func (im *impl) fqn(name string) string {
	return fmt.Sprintf("%s::%s::%s", im.contractAddress, im.moduleName, name)
}

func (im *impl) payload(name string, args ...string) *market.EntryFunctionPayload {
	return &market.EntryFunctionPayload{
		Function:          im.fqn(name),
		TypeArguments:     []string{},
		FunctionArguments: args,
	}
}

// BuildMintPayload assembles the mint_booking call in the contract's
// positional argument order. The request is assumed field-validated; only
// cross-field rules are checked here.
func (im *impl) BuildMintPayload(ctx bCtx.Ctx, req *market.MintRequest) (*market.EntryFunctionPayload, error) {
	price, err := parsePositivePrice(req.OriginalPrice)
	if err != nil {
		return nil, err
	}
	if !listing.Category(strings.ToLower(req.Category)).IsValid() {
		return nil, xerrors.Errorf("category %q: %w", req.Category, domain.ErrBadParamInput)
	}
	if req.CheckOut <= req.CheckIn {
		return nil, xerrors.Errorf("check-out before check-in: %w", domain.ErrBadParamInput)
	}

	return im.payload(market.FnMintBooking,
		req.Buyer.ToLowerStr(),
		req.Name,
		req.Description,
		strings.ToLower(req.Category),
		req.Location,
		req.CheckIn,
		req.CheckOut,
		strconv.FormatInt(req.CheckOutEpoch, 10),
		strconv.Itoa(req.Guests),
		req.ImageUrl,
		strconv.FormatUint(uint64(domain.AptToOctas(price)), 10),
		strconv.Itoa(req.RoyaltyRateBps),
	), nil
}

func (im *impl) BuildListPayload(ctx bCtx.Ctx, req *market.ListRequest) (*market.EntryFunctionPayload, error) {
	price, err := parsePositivePrice(req.Price)
	if err != nil {
		return nil, err
	}

	return im.payload(market.FnListForResale,
		req.TokenAddress.ToLowerStr(),
		strconv.FormatUint(uint64(domain.AptToOctas(price)), 10),
	), nil
}

func (im *impl) BuildBuyPayload(ctx bCtx.Ctx, req *market.BuyRequest) (*market.EntryFunctionPayload, error) {
	return im.payload(market.FnBuyResale, req.TokenAddress.ToLowerStr()), nil
}

func (im *impl) BuildCancelPayload(ctx bCtx.Ctx, req *market.CancelRequest) (*market.EntryFunctionPayload, error) {
	return im.payload(market.FnCancelListing, req.TokenAddress.ToLowerStr()), nil
}

func parsePositivePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, xerrors.Errorf("price %q: %w", s, domain.ErrInvalidNumberFormat)
	}
	if !price.IsPositive() {
		return decimal.Zero, xerrors.Errorf("price must be positive: %w", domain.ErrBadParamInput)
	}
	return price, nil
}
