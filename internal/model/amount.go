package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a non-negative quantity that may be unbounded.
//
// It is used for object counts, per-unit capacities, container capacities
// and free space. Unbounded values follow explicit rules instead of raw
// IEEE-754 behaviour:
//
//	∞ + x = ∞      ∞ - ∞ = ∞      x - ∞ = 0
//	∞ × n = ∞ (n > 0)             x × 0 = 0
//	⌊∞ / x⌋ = ∞    ⌊x / ∞⌋ = 0    ⌊x / 0⌋ = ∞
type Amount float64

// Unbounded is the +∞ amount.
var Unbounded = Amount(math.Inf(1))

// slotEpsilon absorbs float representation error in slot division,
// so that 0.3 / 0.1 yields 3 slots instead of 2.
const slotEpsilon = 1e-9

// IsUnbounded reports whether a is +∞.
func (a Amount) IsUnbounded() bool {
	return math.IsInf(float64(a), 1)
}

// IsZero reports whether a is exactly zero.
func (a Amount) IsZero() bool {
	return a == 0
}

// IsWhole reports whether a is a whole number or unbounded.
func (a Amount) IsWhole() bool {
	if a.IsUnbounded() {
		return true
	}
	return float64(a) == math.Trunc(float64(a))
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	if a.IsUnbounded() || b.IsUnbounded() {
		return Unbounded
	}
	return a + b
}

// Sub returns a - b. An unbounded minuend always yields Unbounded, and a
// finite minuend minus an unbounded subtrahend yields zero.
func (a Amount) Sub(b Amount) Amount {
	switch {
	case a.IsUnbounded():
		return Unbounded
	case b.IsUnbounded():
		return 0
	}
	return a - b
}

// Mul returns a × b. A zero factor wins over an unbounded one, so a
// weightless stack of unbounded count occupies no space.
func (a Amount) Mul(b Amount) Amount {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	if a.IsUnbounded() || b.IsUnbounded() {
		return Unbounded
	}
	return a * b
}

// Min returns the smaller of a and b.
func (a Amount) Min(b Amount) Amount {
	if b.Less(a) {
		return b
	}
	return a
}

// Less reports whether a < b.
func (a Amount) Less(b Amount) bool {
	if a.IsUnbounded() {
		return false
	}
	if b.IsUnbounded() {
		return true
	}
	return a < b
}

// Slots returns how many whole units of size perUnit fit into a.
func (a Amount) Slots(perUnit Amount) Amount {
	switch {
	case perUnit.IsZero():
		return Unbounded
	case a.IsUnbounded():
		return Unbounded
	case perUnit.IsUnbounded():
		return 0
	}
	return Amount(math.Floor(float64(a)/float64(perUnit) + slotEpsilon))
}

// Fits reports whether need fits into free. It tolerates the same
// representation error as Slots, so that n units counted by
// free.Slots(perUnit) always pass Fits(perUnit.Mul(n), free).
func Fits(need, free Amount) bool {
	if !free.Less(need) {
		return true
	}
	if need.IsUnbounded() {
		return false
	}
	return float64(need-free) <= slotEpsilon*math.Max(float64(need), 1)
}

// String renders whole numbers without a fraction and +∞ as "inf".
func (a Amount) String() string {
	if a.IsUnbounded() {
		return "inf"
	}
	return strconv.FormatFloat(float64(a), 'f', -1, 64)
}

// Validate checks that a is a usable amount: not NaN and not negative.
func (a Amount) Validate() error {
	if math.IsNaN(float64(a)) {
		return fmt.Errorf("%w: amount is not a number", ErrInvalidValue)
	}
	if a < 0 {
		return fmt.Errorf("%w: amount %s is negative", ErrInvalidValue, a)
	}
	return nil
}

// ParseAmount converts a string to an Amount. It accepts decimal numbers
// and the spellings "inf", "+inf", "infinity" and "∞" (case insensitive).
func ParseAmount(s string) (Amount, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	switch trimmed {
	case "inf", "+inf", "infinity", "∞", ".inf":
		return Unbounded, nil
	case "":
		return 0, fmt.Errorf("%w: empty amount", ErrInvalidValue)
	}

	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, s)
	}
	a := Amount(f)
	if err := a.Validate(); err != nil {
		return 0, err
	}
	return a, nil
}

// MarshalJSON encodes finite amounts as numbers and Unbounded as "inf",
// since JSON has no representation for infinity.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.IsUnbounded() {
		return []byte(`"inf"`), nil
	}
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a number or a string understood by ParseAmount.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseAmount(s)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: %s is not an amount", ErrInvalidValue, string(data))
	}
	parsed := Amount(f)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*a = parsed
	return nil
}
