package jpltables

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeExponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.1234D+05", "0.1234e+05"},
		{"-0.491248045036476000D-10", "-0.491248045036476000e-10"},
		{"1.5e3", "1.5e3"},
		{"42", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeExponent(tt.in))
		})
	}
}

func TestParseFloatToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    float64
		wantErr bool
	}{
		{name: "fortran exponent", token: "0.813005690741906200D+02", want: 0.813005690741906200e+02},
		{name: "negative small", token: "-0.123456789012345000D-03", want: -0.123456789012345e-03},
		{name: "plain", token: "2451545.0", want: 2451545.0},
		{name: "garbage", token: "0.1X+02", wantErr: true},
		{name: "empty", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFloatToken(tt.token)
			if tt.wantErr {
				var tfe *TokenFormatError
				require.True(t, errors.As(err, &tfe))
				assert.Equal(t, tt.token, tfe.Token)
				assert.True(t, errors.Is(err, strconv.ErrSyntax))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIntToken(t *testing.T) {
	v, err := parseIntToken("1019")
	require.NoError(t, err)
	assert.Equal(t, 1019, v)

	_, err = parseIntToken("10.5")
	var tfe *TokenFormatError
	assert.True(t, errors.As(err, &tfe))
}
