package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{name: "Zero", amount: "0", want: "0.00"},
		{name: "UnderThousand", amount: "850", want: "850.00"},
		{name: "Thousands", amount: "75000", want: "75,000.00"},
		{name: "Lakh", amount: "150850", want: "1,50,850.00"},
		{name: "Crore", amount: "12345678.90", want: "1,23,45,678.90"},
		{name: "Negative", amount: "-151003", want: "-1,51,003.00"},
		{name: "Paise", amount: "151002.50", want: "1,51,002.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FormatMoney(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, got)
		})
	}
}
