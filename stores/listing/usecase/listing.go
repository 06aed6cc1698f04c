package usecase

import (
	"strings"
	"sync"

	"github.com/viney-shih/goroutines"

	bCtx "github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/base/log"
	"github.com/rebooked/goapi/domain"
	"github.com/rebooked/goapi/domain/listing"
)

const defaultFanOutSize = 10

type ListingUseCaseCfg struct {
	ChainRepo listing.ChainRepo
	// FanOutSize bounds concurrent per-token hydrations
	FanOutSize int
}

type impl struct {
	chainRepo  listing.ChainRepo
	fanOutSize int

	mu       sync.RWMutex
	snapshot []listing.Listing
}

func New(cfg *ListingUseCaseCfg) listing.Usecase {
	fanOut := cfg.FanOutSize
	if fanOut <= 0 {
		fanOut = defaultFanOutSize
	}
	return &impl{
		chainRepo:  cfg.ChainRepo,
		fanOutSize: fanOut,
	}
}

// GetActiveListings hydrates every active listing. Enumeration failure
// degrades to an empty result: the caller treats "no data" as valid and the
// background refresh retries.
func (im *impl) GetActiveListings(ctx bCtx.Ctx) ([]listing.Listing, error) {
	listings, err := im.fetchActiveListings(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("fetch active listings failed")
		return []listing.Listing{}, nil
	}
	return listings, nil
}

func (im *impl) fetchActiveListings(ctx bCtx.Ctx) ([]listing.Listing, error) {
	addresses, err := im.chainRepo.GetActiveListingAddresses(ctx)
	if err != nil {
		return nil, err
	}
	if len(addresses) == 0 {
		return []listing.Listing{}, nil
	}

	return im.hydrateAll(ctx, addresses, func(c bCtx.Ctx, token domain.Address) (*listing.Listing, error) {
		l, err := im.hydrate(c, token)
		if err != nil {
			return nil, err
		}
		if !l.IsActive {
			return nil, nil
		}
		return l, nil
	}), nil
}

// GetListingsByOwner hydrates every minted token the owner holds, listed or
// not. Ownership compares case-insensitively; metadata is only fetched once
// ownership confirms.
func (im *impl) GetListingsByOwner(ctx bCtx.Ctx, owner domain.Address) ([]listing.Listing, error) {
	addresses, err := im.chainRepo.GetMintedTokenAddresses(ctx)
	if err != nil {
		ctx.WithFields(log.Fields{
			"owner": owner,
			"err":   err,
		}).Error("fetch minted tokens failed")
		return []listing.Listing{}, nil
	}
	if len(addresses) == 0 {
		return []listing.Listing{}, nil
	}

	return im.hydrateAll(ctx, addresses, func(c bCtx.Ctx, token domain.Address) (*listing.Listing, error) {
		state, err := im.chainRepo.GetSaleState(c, token)
		if err != nil {
			return nil, err
		}
		if !state.Owner.Equals(owner) {
			return nil, nil
		}
		meta, err := im.chainRepo.GetMetadata(c, token)
		if err != nil {
			return nil, err
		}
		return mergeListing(token, state, meta), nil
	}), nil
}

// GetListing hydrates a single token, active or not
func (im *impl) GetListing(ctx bCtx.Ctx, token domain.Address) (*listing.Listing, error) {
	l, err := im.hydrate(ctx, token)
	if err != nil {
		ctx.WithFields(log.Fields{
			"token": token,
			"err":   err,
		}).Error("hydrate listing failed")
		return nil, domain.ErrNotFound
	}
	return l, nil
}

// hydrateAll fans the per-token hydrations out over a bounded batch and
// joins once every lookup has settled. A failed token drops out of the
// result; it never fails the aggregate.
func (im *impl) hydrateAll(ctx bCtx.Ctx, addresses []domain.Address, one func(bCtx.Ctx, domain.Address) (*listing.Listing, error)) []listing.Listing {
	b := goroutines.NewBatch(im.fanOutSize, goroutines.WithBatchSize(len(addresses)))
	defer b.Close()

	for i := 0; i < len(addresses); i++ {
		token := addresses[i]
		b.Queue(func() (interface{}, error) {
			l, err := one(ctx, token)
			if err != nil {
				ctx.WithFields(log.Fields{
					"token": token,
					"err":   err,
				}).Warn("token hydration dropped")
				return nil, nil
			}
			return l, nil
		})
	}
	b.QueueComplete()

	listings := make([]listing.Listing, 0, len(addresses))
	for ret := range b.Results() {
		if ret.Error() != nil {
			continue
		}
		if l, ok := ret.Value().(*listing.Listing); ok && l != nil {
			listings = append(listings, *l)
		}
	}
	return listings
}

// hydrate runs the sale-state and metadata lookups concurrently and merges
func (im *impl) hydrate(ctx bCtx.Ctx, token domain.Address) (*listing.Listing, error) {
	type metaResult struct {
		meta *listing.BookingMetadata
		err  error
	}
	metaCh := make(chan metaResult, 1)
	go func() {
		meta, err := im.chainRepo.GetMetadata(ctx, token)
		metaCh <- metaResult{meta, err}
	}()

	state, stateErr := im.chainRepo.GetSaleState(ctx, token)
	mr := <-metaCh

	if stateErr != nil {
		return nil, stateErr
	}
	if mr.err != nil {
		return nil, mr.err
	}
	return mergeListing(token, state, mr.meta), nil
}

func mergeListing(token domain.Address, state *listing.SaleState, meta *listing.BookingMetadata) *listing.Listing {
	title := meta.Name
	if title == "" {
		title = listing.DefaultTitle
	}

	category := listing.Category(strings.ToLower(meta.Category))
	if !category.IsValid() {
		category = listing.DefaultCategory
	}

	return &listing.Listing{
		TokenAddress:   token,
		Title:          title,
		Description:    meta.Description,
		ImageUrl:       meta.Uri,
		Category:       category,
		Location:       meta.Location,
		OriginalPrice:  meta.OriginalPrice.ToApt(),
		ResalePrice:    state.Price.ToApt(),
		RoyaltyRateBps: state.RoyaltyRateBps,
		Seller:         state.Owner,
		OriginalBuyer:  state.OriginalBuyer,
		Owner:          state.Owner,
		ResaleCount:    meta.ResaleCount,
		IsActive:       state.IsActive,
		CheckIn:        meta.CheckIn,
		CheckOut:       meta.CheckOut,
		CheckOutExpiry: meta.CheckOutExpiry,
		Guests:         meta.Guests,
	}
}

// RefreshSnapshot replaces the served snapshot with a fresh hydration. The
// error propagates so the poller can back off; the stale snapshot stays up
// until a cycle completes. Whichever cycle finishes last wins, regardless of
// start order.
func (im *impl) RefreshSnapshot(ctx bCtx.Ctx) error {
	listings, err := im.fetchActiveListings(ctx)
	if err != nil {
		return err
	}

	im.mu.Lock()
	im.snapshot = listings
	im.mu.Unlock()
	return nil
}

// GetSnapshot returns the listings of the last completed refresh
func (im *impl) GetSnapshot(ctx bCtx.Ctx) []listing.Listing {
	im.mu.RLock()
	defer im.mu.RUnlock()

	out := make([]listing.Listing, len(im.snapshot))
	copy(out, im.snapshot)
	return out
}
