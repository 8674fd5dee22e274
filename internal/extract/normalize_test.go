// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "unchanged", raw: "Alice Smith", want: "Alice Smith"},
		{name: "trims ends", raw: "  Alice  ", want: "Alice"},
		{name: "collapses inner runs", raw: "Alice \t  Smith", want: "Alice Smith"},
		{name: "keeps case and punctuation", raw: "ACME Co. Ltd.", want: "ACME Co. Ltd."},
		{name: "empty", raw: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.raw))
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "day first slash", raw: "05/08/2023", want: "2023-08-05"},
		{name: "day first dash", raw: "5-8-2023", want: "2023-08-05"},
		{name: "day first dot two digit year", raw: "05.08.23", want: "2023-08-05"},
		{name: "iso", raw: "2023-08-05", want: "2023-08-05"},
		{name: "ambiguous resolves day first", raw: "03/04/2025", want: "2025-04-03"},
		{name: "month first when day first is impossible", raw: "08/25/2023", want: "2023-08-25"},
		{name: "surrounding space", raw: " 01/04/2023 ", want: "2023-04-01"},
		{name: "impossible day", raw: "31/02/2023", wantErr: ErrBadDate},
		{name: "not a date", raw: "notadate", wantErr: ErrBadDate},
		{name: "empty", raw: "  ", wantErr: ErrEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.raw)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, eris.Is(err, tt.wantErr), "got %v", err)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "thousands separator", raw: "12,345.50", want: "12345.5"},
		{name: "currency marker with dot", raw: "Rs. 12,345.50", want: "12345.5"},
		{name: "rupee sign and lakh grouping", raw: "₹1,00,000", want: "100000"},
		{name: "dollar", raw: "$1,200", want: "1200"},
		{name: "drops trailing zero", raw: "0.50", want: "0.5"},
		{name: "trailing point", raw: "12.", want: "12"},
		{name: "bare leading point", raw: ".50", want: "0.5"},
		{name: "inr marker", raw: "INR 23,400", want: "23400"},
		{name: "locale blind comma decimal", raw: "1.234,56", want: "1.23456"},
		{name: "two points", raw: "1.234.567", wantErr: true},
		{name: "no digits", raw: "free", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAmount(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, eris.Is(err, ErrBadAmount), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDispatch(t *testing.T) {
	got, err := normalize(KindPlainText, " ABC  123 ")
	require.NoError(t, err)
	assert.Equal(t, "ABC 123", got)

	got, err = normalize(KindDate, "05/08/2023")
	require.NoError(t, err)
	assert.Equal(t, "2023-08-05", got)

	got, err = normalize(KindCurrencyAmount, "1,000")
	require.NoError(t, err)
	assert.Equal(t, "1000", got)
}
