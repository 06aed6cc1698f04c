package mocks

import (
	"github.com/stretchr/testify/mock"

	bCtx "github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/domain"
	"github.com/rebooked/goapi/domain/listing"
)

// ChainRepo is a mock type for the listing.ChainRepo interface
type ChainRepo struct {
	mock.Mock
}

func (_m *ChainRepo) GetActiveListingAddresses(c bCtx.Ctx) ([]domain.Address, error) {
	ret := _m.Called(c)

	var r0 []domain.Address
	if rf, ok := ret.Get(0).(func(bCtx.Ctx) []domain.Address); ok {
		r0 = rf(c)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Address)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(bCtx.Ctx) error); ok {
		r1 = rf(c)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *ChainRepo) GetMintedTokenAddresses(c bCtx.Ctx) ([]domain.Address, error) {
	ret := _m.Called(c)

	var r0 []domain.Address
	if rf, ok := ret.Get(0).(func(bCtx.Ctx) []domain.Address); ok {
		r0 = rf(c)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Address)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(bCtx.Ctx) error); ok {
		r1 = rf(c)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *ChainRepo) GetSaleState(c bCtx.Ctx, token domain.Address) (*listing.SaleState, error) {
	ret := _m.Called(c, token)

	var r0 *listing.SaleState
	if rf, ok := ret.Get(0).(func(bCtx.Ctx, domain.Address) *listing.SaleState); ok {
		r0 = rf(c, token)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*listing.SaleState)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(bCtx.Ctx, domain.Address) error); ok {
		r1 = rf(c, token)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *ChainRepo) GetMetadata(c bCtx.Ctx, token domain.Address) (*listing.BookingMetadata, error) {
	ret := _m.Called(c, token)

	var r0 *listing.BookingMetadata
	if rf, ok := ret.Get(0).(func(bCtx.Ctx, domain.Address) *listing.BookingMetadata); ok {
		r0 = rf(c, token)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*listing.BookingMetadata)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(bCtx.Ctx, domain.Address) error); ok {
		r1 = rf(c, token)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
