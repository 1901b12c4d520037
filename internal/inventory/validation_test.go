package inventory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "lower case word", input: "widget", want: "Widget"},
		{name: "upper case word", input: "WIDGET", want: "Widget"},
		{name: "several words", input: "green  apple pie", want: "Green  Apple Pie"},
		{name: "surrounding spaces trimmed", input: "  kiwi ", want: "Kiwi"},
		{name: "digits rejected", input: "123", wantErr: true},
		{name: "mixed digits rejected", input: "widget2", wantErr: true},
		{name: "punctuation rejected", input: "salt & pepper", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
		{name: "only spaces rejected", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrNameFormat)
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, FieldName, verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "5", want: 5},
		{input: "0", want: 0},
		{input: " 12 ", want: 12},
		{input: "-1", wantErr: true},
		{input: "1.5", wantErr: true},
		{input: "five", wantErr: true},
		{input: "", wantErr: true},
		{input: "99999999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuantity(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrQuantityFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: FieldPrice, Input: "1.2.3", Err: ErrPriceFormat}
	assert.Equal(t, `invalid price "1.2.3": price must be a number with at most one decimal point`, err.Error())
	assert.Equal(t, "quantity", FieldQuantity.String())
}
