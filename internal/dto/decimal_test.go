package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json number", `200`, "200"},
		{"json float", `19.9`, "19.9"},
		{"numeric string", `"200"`, "200"},
		{"padded numeric string", `" 200 "`, "200"},
		{"null", `null`, "0"},
		{"empty string", `""`, "0"},
		{"garbage string", `"two hundred"`, "0"},
		{"negative", `"-5.5"`, "-5.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tt.in), &n))
			assert.Equal(t, tt.want, n.String())
		})
	}
}

// A single unparsable field zeroes that field only, never the record.
func TestCheckoutLineItemCoercion(t *testing.T) {
	var li CheckoutLineItem
	payload := `{"p_name":"Thinkpad","p_cat":"LAPTOP","p_cost":"oops","p_qu":2}`
	require.NoError(t, json.Unmarshal([]byte(payload), &li))
	assert.Equal(t, "Thinkpad", li.Name)
	assert.True(t, li.Cost.IsZero())
	assert.Equal(t, "2", li.Quantity.String())
}
