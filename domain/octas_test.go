package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOctasToApt(t *testing.T) {
	req := require.New(t)

	req.True(Octas(500000000).ToApt().Equal(decimal.NewFromInt(5)))
	req.True(Octas(100000000).ToApt().Equal(decimal.NewFromInt(1)))
	req.True(Octas(1).ToApt().Equal(decimal.RequireFromString("0.00000001")))
	req.True(Octas(0).ToApt().IsZero())

	// amounts past the int64 range stay positive
	req.True(Octas(math.MaxUint64).ToApt().Equal(decimal.RequireFromString("184467440737.09551615")))
}

func TestAptToOctas(t *testing.T) {
	req := require.New(t)

	req.Equal(Octas(500000000), AptToOctas(decimal.NewFromInt(5)))
	req.Equal(Octas(12500000), AptToOctas(decimal.RequireFromString("0.125")))
	// sub-octa dust truncates
	req.Equal(Octas(1), AptToOctas(decimal.RequireFromString("0.000000019")))
}

func TestParseOctas(t *testing.T) {
	req := require.New(t)

	v, err := ParseOctas("500000000")
	req.NoError(err)
	req.Equal(Octas(500000000), v)

	_, err = ParseOctas("not-a-number")
	req.ErrorIs(err, ErrInvalidNumberFormat)

	_, err = ParseOctas("-1")
	req.Error(err)
}

func TestAddressEquals(t *testing.T) {
	req := require.New(t)

	a := Address("0xAbC123")
	b := Address("0xabc123")
	req.True(a.Equals(b))
	req.Equal(Address("0xabc123"), a.ToLower())
	req.True(a.IsValid())
	req.False(Address("abc").IsValid())
	req.False(Address("").IsValid())
}
