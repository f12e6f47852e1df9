package domain

import (
	"bytes"
	"fmt"
	"strconv"
)

// Amount is a monetary value. The remote API serializes decimals as JSON
// strings ("20.00") in its default deployment and as numbers in another, so
// both shapes decode into the same type. The client only ever sums amounts
// for the totals consistency check; the server stays authoritative for all
// money arithmetic.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if string(data) == "null" {
		*a = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("amount %q is neither a number nor a decimal string: %w", data, err)
	}
	*a = Amount(v)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(a), 'f', 2, 64)), nil
}

func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}
