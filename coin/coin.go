/*
Package coin defines the fungible amount carried by coin objects and used as
escrow prices: an unsigned integer amount of a single currency.
*/
package coin

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/iov-one/settle/errors"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

var humanCoinFormatRx = regexp.MustCompile(`^\s*(\d+)\s*([A-Z]{3,4})\s*$`)

// Coin is an amount of a single currency, expressed in its smallest unit.
type Coin struct {
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

// NewCoin creates a new coin object
func NewCoin(amount uint64, ticker string) Coin {
	return Coin{Ticker: ticker, Amount: amount}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount uint64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// ID returns a coin ticker name.
func (c Coin) ID() string {
	return c.Ticker
}

// Add combines two coins.
// Returns error if they are of different
// currencies, or if the combination would cause
// an overflow
func (c Coin) Add(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}
	if c.Amount > math.MaxUint64-o.Amount {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", c, o)
	}
	c.Amount += o.Amount
	return c, nil
}

// Subtract given amount. Fails with ErrAmount if the result would be
// negative.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "subtracting %s from %s", o.Ticker, c.Ticker)
	}
	if c.Amount < o.Amount {
		return Coin{}, errors.Wrapf(errors.ErrAmount, "%s - %s", c, o)
	}
	c.Amount -= o.Amount
	return c, nil
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsEmpty returns true on null or zero amount
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true amounts are 0
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsGTE returns true if c is same type and at least
// as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// SameType returns true if they have the same currency
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone provides an independent copy of a coin pointer
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// Validate ensures that the coin has a valid currency code. Any amount,
// zero included, is valid.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid currency: %q", c.Ticker)
	}
	return nil
}

// String provides a human readable representation of the coin that can be
// parsed back with ParseHumanFormat.
func (c Coin) String() string {
	if c.Ticker == "" {
		return strconv.FormatUint(c.Amount, 10)
	}
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

// ParseHumanFormat parse a human readable coin representation. Accepted format
// is a string:
//
//	"<amount> <ticker>"
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormatRx.FindStringSubmatch(h)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	amount, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "amount %q", m[1])
	}
	return Coin{Ticker: m[2], Amount: amount}, nil
}

// UnmarshalJSON accepts both the human readable "<amount> <ticker>" string
// and an object with ticker and amount attributes.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// Because UnmarshalJSON method is provided, we can no longer use Coin
	// type for this.
	var coin struct {
		Ticker string
		Amount uint64
	}
	if err := json.Unmarshal(raw, &coin); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*c = Coin{Ticker: coin.Ticker, Amount: coin.Amount}
	return nil
}

// Set updates this coin value to what is provided. This method implements
// flag.Value interface.
func (c *Coin) Set(raw string) error {
	val, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = val
	return nil
}
