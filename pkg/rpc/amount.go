package rpc

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/coinbridge/noderpc/pkg/jsonval"
)

// AmountScale is the number of fractional digits an Amount carries:
// one coin equals 10^8 smallest units.
const AmountScale = 8

// Amount is an exact monetary quantity held as a fixed-point integer
// of smallest units. It never passes through binary floating point:
// wire numbers are decoded from their literal text and encoded back
// as a canonical fixed-8 decimal. Immutable once constructed.
type Amount struct {
	units int64
}

// AmountFromUnits creates an Amount from a count of smallest units.
func AmountFromUnits(units int64) Amount {
	return Amount{units: units}
}

// AmountFromString parses a decimal literal ("21.00000001") into an
// Amount. It fails with a *DecodeError if the literal is not a valid
// decimal, has more than AmountScale fractional digits, or overflows
// the representable range.
func AmountFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, &DecodeError{Reason: fmt.Sprintf("%q is not a decimal amount", s), Err: err}
	}
	return amountFromDecimal(d)
}

func amountFromDecimal(d decimal.Decimal) (Amount, error) {
	scaled := d.Shift(AmountScale)
	if !scaled.IsInteger() {
		return Amount{}, &DecodeError{
			Reason: fmt.Sprintf("amount %s has more than %d fractional digits", d, AmountScale),
		}
	}
	big := scaled.BigInt()
	if !big.IsInt64() {
		return Amount{}, &DecodeError{Reason: fmt.Sprintf("amount %s is out of range", d)}
	}
	return Amount{units: big.Int64()}, nil
}

// DecodeAmount interprets a JSON value as an Amount. Numbers and
// numeric strings are accepted; anything else fails with a
// *DecodeError.
func DecodeAmount(v jsonval.Value) (Amount, error) {
	if text, ok := v.NumberText(); ok {
		return AmountFromString(text)
	}
	if s, ok := v.StringVal(); ok {
		return AmountFromString(s)
	}
	return Amount{}, &DecodeError{Reason: fmt.Sprintf("amount must be a number or numeric string, got %s", v.Kind())}
}

// Units returns the amount in smallest units.
func (a Amount) Units() int64 {
	return a.units
}

// Decimal returns the amount as an exact decimal in display
// denomination.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(a.units, -AmountScale)
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.units == 0
}

// String returns the canonical display form: fixed AmountScale
// fractional digits, no exponent. Amount -> String -> Amount is
// lossless.
func (a Amount) String() string {
	return a.Decimal().StringFixed(AmountScale)
}

// JSONValue encodes the amount as a canonical JSON number literal, so
// repeated encode/decode cycles are idempotent.
func (a Amount) JSONValue() jsonval.Value {
	return jsonval.Number(a.String())
}

// MarshalJSON implements json.Marshaler, emitting the canonical number
// literal.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler. It receives the exact
// wire literal, so precision survives decoding of typed result
// structs; both bare numbers and quoted numeric strings are accepted.
func (a *Amount) UnmarshalJSON(data []byte) error {
	text := string(data)
	if strings.HasPrefix(text, `"`) {
		if len(text) < 2 || !strings.HasSuffix(text, `"`) {
			return &DecodeError{Reason: fmt.Sprintf("%s is not a valid amount literal", text)}
		}
		text = text[1 : len(text)-1]
	}
	parsed, err := AmountFromString(text)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MaxAmount is the largest representable Amount.
var MaxAmount = Amount{units: math.MaxInt64}
