package repository

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/xerrors"

	bCtx "github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/base/log"
	"github.com/rebooked/goapi/domain"
	"github.com/rebooked/goapi/domain/keys"
	"github.com/rebooked/goapi/domain/listing"
	"github.com/rebooked/goapi/service/aptos"
	"github.com/rebooked/goapi/service/cache"
	"github.com/rebooked/goapi/service/cache/provider/primitive"
)

const (
	viewGetActiveListings   = "get_active_listings"
	viewGetAllMintedTokens  = "get_all_minted_tokens"
	viewGetListing          = "get_listing"
	viewGetBookingMetadata  = "get_booking_metadata"
	metadataResponseArity   = 12
	saleStateResponseArity  = 5
	metadataCacheSizeMb     = 8
	metadataCacheTtl        = time.Hour
)

type ChainRepoCfg struct {
	Client          aptos.Client
	ContractAddress domain.Address
	ModuleName      string
}

type impl struct {
	client          aptos.Client
	contractAddress domain.Address
	moduleName      string
	metadataCache   cache.Service
}

func NewChainRepo(cfg *ChainRepoCfg) listing.ChainRepo {
	return &impl{
		client:          cfg.Client,
		contractAddress: cfg.ContractAddress,
		moduleName:      cfg.ModuleName,
		metadataCache: cache.New(cache.ServiceConfig{
			Ttl:   metadataCacheTtl,
			Pfx:   keys.PfxBookingMetadata,
			Cache: primitive.NewPrimitive(keys.PfxBookingMetadata, metadataCacheSizeMb),
		}),
	}
}

func (im *impl) fqn(name string) string {
	return fmt.Sprintf("%s::%s::%s", im.contractAddress, im.moduleName, name)
}

func (im *impl) GetActiveListingAddresses(ctx bCtx.Ctx) ([]domain.Address, error) {
	return im.getAddressList(ctx, viewGetActiveListings)
}

func (im *impl) GetMintedTokenAddresses(ctx bCtx.Ctx) ([]domain.Address, error) {
	return im.getAddressList(ctx, viewGetAllMintedTokens)
}

// getAddressList calls an enumeration view returning a single vector of
// address strings
func (im *impl) getAddressList(ctx bCtx.Ctx, view string) ([]domain.Address, error) {
	values, err := im.client.View(ctx, &aptos.ViewRequest{Function: im.fqn(view)})
	if err != nil {
		ctx.WithFields(log.Fields{
			"view": view,
			"err":  err,
		}).Error("view call failed")
		return nil, err
	}
	if len(values) < 1 {
		return nil, xerrors.Errorf("%s: empty response: %w", view, domain.ErrUnexpectedShape)
	}

	var addresses []domain.Address
	if err := json.Unmarshal(values[0], &addresses); err != nil {
		ctx.WithFields(log.Fields{
			"view": view,
			"err":  err,
		}).Error("decode address list failed")
		return nil, domain.ErrUnexpectedShape
	}
	return addresses, nil
}

func (im *impl) GetSaleState(ctx bCtx.Ctx, token domain.Address) (*listing.SaleState, error) {
	values, err := im.client.View(ctx, &aptos.ViewRequest{
		Function:  im.fqn(viewGetListing),
		Arguments: []interface{}{string(token)},
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"token": token,
			"err":   err,
		}).Error("get_listing failed")
		return nil, err
	}

	state, err := parseSaleState(values)
	if err != nil {
		ctx.WithFields(log.Fields{
			"token": token,
			"err":   err,
		}).Error("parse sale state failed")
		return nil, err
	}
	return state, nil
}

// GetMetadata reads through the in-process cache: booking metadata is fixed
// at mint time, only resale count drifts and the sale-state path owns the
// fields a consumer needs fresh
func (im *impl) GetMetadata(ctx bCtx.Ctx, token domain.Address) (*listing.BookingMetadata, error) {
	var meta listing.BookingMetadata
	if err := im.metadataCache.GetByFunc(ctx, token.ToLowerStr(), &meta, func() (interface{}, error) {
		return im.fetchMetadata(ctx, token)
	}); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (im *impl) fetchMetadata(ctx bCtx.Ctx, token domain.Address) (*listing.BookingMetadata, error) {
	values, err := im.client.View(ctx, &aptos.ViewRequest{
		Function:  im.fqn(viewGetBookingMetadata),
		Arguments: []interface{}{string(token)},
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"token": token,
			"err":   err,
		}).Error("get_booking_metadata failed")
		return nil, err
	}

	meta, err := parseMetadata(values)
	if err != nil {
		ctx.WithFields(log.Fields{
			"token": token,
			"err":   err,
		}).Error("parse metadata failed")
		return nil, err
	}
	return meta, nil
}

// parseSaleState decodes the positional get_listing response
// [isActive, owner, price, originalBuyer, royaltyBps]
func parseSaleState(values []json.RawMessage) (*listing.SaleState, error) {
	if len(values) < saleStateResponseArity {
		return nil, xerrors.Errorf("sale state arity %d: %w", len(values), domain.ErrUnexpectedShape)
	}

	isActive, err := asBool(values[0])
	if err != nil {
		return nil, err
	}
	owner, err := asString(values[1])
	if err != nil {
		return nil, err
	}
	price, err := asU64(values[2])
	if err != nil {
		return nil, err
	}
	originalBuyer, err := asString(values[3])
	if err != nil {
		return nil, err
	}
	royalty, err := asU64(values[4])
	if err != nil {
		return nil, err
	}

	return &listing.SaleState{
		IsActive:       isActive,
		Owner:          domain.Address(owner),
		Price:          domain.Octas(price),
		OriginalBuyer:  domain.Address(originalBuyer),
		RoyaltyRateBps: int(royalty),
	}, nil
}

// parseMetadata decodes the positional get_booking_metadata response.
// Position 1 is the contract's internal listing handle and is skipped.
func parseMetadata(values []json.RawMessage) (*listing.BookingMetadata, error) {
	if len(values) < metadataResponseArity {
		return nil, xerrors.Errorf("metadata arity %d: %w", len(values), domain.ErrUnexpectedShape)
	}

	originalPrice, err := asU64(values[0])
	if err != nil {
		return nil, err
	}
	uri, err := asString(values[2])
	if err != nil {
		return nil, err
	}
	resaleCount, err := asU64(values[3])
	if err != nil {
		return nil, err
	}
	name, err := asString(values[4])
	if err != nil {
		return nil, err
	}
	description, err := asString(values[5])
	if err != nil {
		return nil, err
	}
	category, err := asString(values[6])
	if err != nil {
		return nil, err
	}
	location, err := asString(values[7])
	if err != nil {
		return nil, err
	}
	checkIn, err := asString(values[8])
	if err != nil {
		return nil, err
	}
	checkOut, err := asString(values[9])
	if err != nil {
		return nil, err
	}
	guests, err := asU64(values[10])
	if err != nil {
		return nil, err
	}
	expiry, err := asU64(values[11])
	if err != nil {
		return nil, err
	}

	return &listing.BookingMetadata{
		OriginalPrice:  domain.Octas(originalPrice),
		Uri:            uri,
		ResaleCount:    int(resaleCount),
		Name:           name,
		Description:    description,
		Category:       category,
		Location:       location,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Guests:         int(guests),
		CheckOutExpiry: int64(expiry),
	}, nil
}

func asBool(raw json.RawMessage) (bool, error) {
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, xerrors.Errorf("want bool, got %s: %w", raw, domain.ErrUnexpectedShape)
	}
	return v, nil
}

func asString(raw json.RawMessage) (string, error) {
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", xerrors.Errorf("want string, got %s: %w", raw, domain.ErrUnexpectedShape)
	}
	return v, nil
}

// asU64 accepts both encodings the node uses for move u64: JSON string and
// bare number
func asU64(raw json.RawMessage) (uint64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, xerrors.Errorf("want u64, got %q: %w", s, domain.ErrUnexpectedShape)
		}
		return v, nil
	}
	var n uint64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, xerrors.Errorf("want u64, got %s: %w", raw, domain.ErrUnexpectedShape)
	}
	return n, nil
}
