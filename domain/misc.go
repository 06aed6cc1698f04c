package domain

import (
	"regexp"
	"strings"
)

type SortDir int8

const (
	SortDirAsc  SortDir = 1
	SortDirDesc SortDir = -1
)

// Address is an aptos account or object address, 0x-prefixed hex.
// On-chain comparisons are case-insensitive.
type Address string

const EmptyAddress = Address("0x0")

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}$`)

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

func (a Address) IsValid() bool {
	return addressPattern.MatchString(string(a))
}

type TxHash string

func (h TxHash) String() string {
	return string(h)
}

type TxVersion uint64
