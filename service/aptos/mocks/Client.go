package mocks

import (
	"encoding/json"

	"github.com/stretchr/testify/mock"

	bCtx "github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/domain"
	"github.com/rebooked/goapi/service/aptos"
)

// Client is a mock type for the aptos.Client interface
type Client struct {
	mock.Mock
}

func (_m *Client) View(c bCtx.Ctx, req *aptos.ViewRequest) ([]json.RawMessage, error) {
	ret := _m.Called(c, req)

	var r0 []json.RawMessage
	if rf, ok := ret.Get(0).(func(bCtx.Ctx, *aptos.ViewRequest) []json.RawMessage); ok {
		r0 = rf(c, req)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]json.RawMessage)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(bCtx.Ctx, *aptos.ViewRequest) error); ok {
		r1 = rf(c, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *Client) GetAccountTransactions(c bCtx.Ctx, address domain.Address, limit int) ([]aptos.AccountTransaction, error) {
	ret := _m.Called(c, address, limit)

	var r0 []aptos.AccountTransaction
	if rf, ok := ret.Get(0).(func(bCtx.Ctx, domain.Address, int) []aptos.AccountTransaction); ok {
		r0 = rf(c, address, limit)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]aptos.AccountTransaction)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(bCtx.Ctx, domain.Address, int) error); ok {
		r1 = rf(c, address, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
