package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a parse-or-zero decimal for checkout payloads. Upstream records
// carry numeric fields as JSON numbers, numeric strings or garbage; arithmetic
// downstream must never see a non-numeric value, so anything unparsable
// decodes as zero instead of failing the whole record.
type Number struct {
	decimal.Decimal
}

func NumberFromDecimal(d decimal.Decimal) Number {
	return Number{Decimal: d}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		n.Decimal = decimal.Zero
		return nil
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		n.Decimal = decimal.Zero
		return nil
	}
	n.Decimal = d
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	f, _ := n.Decimal.Float64()
	return json.Marshal(f)
}
