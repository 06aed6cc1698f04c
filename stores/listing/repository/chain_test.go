package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/domain"
	"github.com/rebooked/goapi/service/aptos"
	mAptos "github.com/rebooked/goapi/service/aptos/mocks"
)

type chainRepoSuite struct {
	suite.Suite

	client *mAptos.Client
	im     *impl
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(chainRepoSuite))
}

func (s *chainRepoSuite) SetupTest() {
	s.client = &mAptos.Client{}
	s.im = NewChainRepo(&ChainRepoCfg{
		Client:          s.client,
		ContractAddress: "0xc0ffee",
		ModuleName:      "resale_marketplace_v3",
	}).(*impl)
}

func (s *chainRepoSuite) TearDownTest() {
	s.client.AssertExpectations(s.T())
}

func raws(parts ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(parts))
	for i, p := range parts {
		out[i] = json.RawMessage(p)
	}
	return out
}

func (s *chainRepoSuite) TestGetActiveListingAddresses() {
	c := bCtx.Background()
	s.client.On("View", mock.Anything, &aptos.ViewRequest{
		Function: "0xc0ffee::resale_marketplace_v3::get_active_listings",
	}).Return(raws(`["0xaaa", "0xbbb"]`), nil).Once()

	addrs, err := s.im.GetActiveListingAddresses(c)
	s.NoError(err)
	s.Equal([]domain.Address{"0xaaa", "0xbbb"}, addrs)
}

func (s *chainRepoSuite) TestGetSaleState() {
	c := bCtx.Background()
	s.client.On("View", mock.Anything, mock.Anything).
		Return(raws(`true`, `"0xowner"`, `"500000000"`, `"0xbuyer"`, `"10"`), nil).Once()

	state, err := s.im.GetSaleState(c, "0xtok")
	s.NoError(err)
	s.True(state.IsActive)
	s.Equal(domain.Address("0xowner"), state.Owner)
	s.Equal(domain.Octas(500000000), state.Price)
	s.Equal(domain.Address("0xbuyer"), state.OriginalBuyer)
	s.Equal(10, state.RoyaltyRateBps)
}

func (s *chainRepoSuite) TestGetSaleStateBadShape() {
	c := bCtx.Background()
	// owner slot holds a number, not a string
	s.client.On("View", mock.Anything, mock.Anything).
		Return(raws(`true`, `42`, `"1"`, `"0xbuyer"`, `"10"`), nil).Once()

	_, err := s.im.GetSaleState(c, "0xtok")
	s.ErrorIs(err, domain.ErrUnexpectedShape)
}

func (s *chainRepoSuite) TestGetSaleStateShortResponse() {
	c := bCtx.Background()
	s.client.On("View", mock.Anything, mock.Anything).
		Return(raws(`true`, `"0xowner"`), nil).Once()

	_, err := s.im.GetSaleState(c, "0xtok")
	s.ErrorIs(err, domain.ErrUnexpectedShape)
}

func (s *chainRepoSuite) TestGetMetadata() {
	c := bCtx.Background()
	s.client.On("View", mock.Anything, mock.Anything).Return(raws(
		`"2000000000"`, `null`, `"https://img.example/1.png"`, `"2"`,
		`"Grand Hotel"`, `"Two nights"`, `"hotel"`, `"Lisbon"`,
		`"2026-03-01 14:00"`, `"2026-03-03 11:00"`, `"2"`, `"1772535600"`,
	), nil).Once()

	meta, err := s.im.GetMetadata(c, "0xTok")
	s.NoError(err)
	s.Equal(domain.Octas(2000000000), meta.OriginalPrice)
	s.Equal("Grand Hotel", meta.Name)
	s.Equal("hotel", meta.Category)
	s.Equal(2, meta.ResaleCount)
	s.Equal(2, meta.Guests)
	s.Equal(int64(1772535600), meta.CheckOutExpiry)

	// second read is served from cache, no further view call
	again, err := s.im.GetMetadata(c, "0xtok")
	s.NoError(err)
	s.Equal(meta.Name, again.Name)
}

func (s *chainRepoSuite) TestU64AcceptsBareNumbers() {
	v, err := asU64(json.RawMessage(`123`))
	s.NoError(err)
	s.Equal(uint64(123), v)

	v, err = asU64(json.RawMessage(`"456"`))
	s.NoError(err)
	s.Equal(uint64(456), v)

	_, err = asU64(json.RawMessage(`"abc"`))
	s.ErrorIs(err, domain.ErrUnexpectedShape)
}
