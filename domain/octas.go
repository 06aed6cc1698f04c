package domain

import (
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"
)

// OctasPerApt is the number of subunits per display unit. Prices cross the
// wire as u64 octas and surface as decimal APT.
const OctasPerApt = 100_000_000

// Octas is an amount in the chain's smallest currency unit
type Octas uint64

var octasPerApt = decimal.NewFromInt(OctasPerApt)

// ToApt converts a subunit amount to a display-unit decimal. Construction
// goes through big.Int so amounts above 2^63-1 octas keep their sign.
func (o Octas) ToApt() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(o)), 0).Div(octasPerApt)
}

// AptToOctas converts a display-unit decimal to subunits, truncating
// anything below one octa
func AptToOctas(apt decimal.Decimal) Octas {
	return Octas(apt.Mul(octasPerApt).IntPart())
}

// ParseOctas parses the string-encoded u64 the node returns for move u64
func ParseOctas(s string) (Octas, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, xerrors.Errorf("parse octas %q: %w", s, ErrInvalidNumberFormat)
	}
	return Octas(v), nil
}
