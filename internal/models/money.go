package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in minor units (cents) stored as numeric(10,2).
type Money int64

const (
	moneyMaxDigits = 10
	moneyPlaces    = 2
)

var (
	ErrMoneyFormat   = errors.New("A valid number is required.")
	ErrMoneyPlaces   = fmt.Errorf("Ensure that there are no more than %d decimal places.", moneyPlaces)
	ErrMoneyDigits   = fmt.Errorf("Ensure that there are no more than %d digits in total.", moneyMaxDigits)
	ErrMoneyNegative = errors.New("Ensure this value is greater than or equal to 0.")
)

// ParseMoney parses a plain decimal like "25", "25.5" or "-3.10".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMoneyFormat
	}
	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = s[1:]
	}
	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" && (!hasDot || frac == "") {
		return 0, ErrMoneyFormat
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, ErrMoneyFormat
	}
	frac = strings.TrimRight(frac, "0")
	if len(frac) > moneyPlaces {
		return 0, ErrMoneyPlaces
	}
	whole = strings.TrimLeft(whole, "0")
	if len(whole) > moneyMaxDigits-moneyPlaces {
		return 0, ErrMoneyDigits
	}

	var units int64
	if whole != "" {
		w, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, ErrMoneyFormat
		}
		units = w * 100
	}
	frac += strings.Repeat("0", moneyPlaces-len(frac))
	f, _ := strconv.ParseInt(frac, 10, 64)
	units += f
	if neg {
		units = -units
	}
	return Money(units), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// maxMoney is the largest amount numeric(10,2) holds, in cents.
const maxMoney Money = 99999999_99

// Mul returns m multiplied by a whole quantity. Results outside the column's
// range, including int64 overflow, fail with ErrMoneyDigits.
func (m Money) Mul(qty int) (Money, error) {
	if m < 0 || qty < 0 {
		return 0, ErrMoneyNegative
	}
	if m != 0 && Money(qty) > maxMoney/m {
		return 0, ErrMoneyDigits
	}
	return m * Money(qty), nil
}

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON renders the amount as a quoted decimal string, e.g. "25.00".
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case int64:
		*m = Money(v * 100)
		return nil
	case float64:
		*m = Money(math.Round(v * 100))
		return nil
	case []byte:
		return m.scanString(string(v))
	case string:
		return m.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into Money", src)
	}
}

func (m *Money) scanString(s string) error {
	parsed, err := ParseMoney(s)
	if err != nil {
		// numeric columns may come back with more scale than we keep
		f, ferr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if ferr != nil {
			return fmt.Errorf("failed to parse money %q: %v", s, err)
		}
		*m = Money(math.Round(f * 100))
		return nil
	}
	*m = parsed
	return nil
}

// Decimal carries a client-supplied decimal verbatim so that it can be
// validated per field instead of failing the whole JSON decode.
type Decimal string

func (d *Decimal) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*d = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = Decimal(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*d = Decimal(n.String())
	return nil
}
