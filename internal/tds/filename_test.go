package tds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"LED Flood Light 40W", "LED_Flood_Light_40W_TDS.pdf"},
		{"Lamp (Cool/White) 3000K!", "Lamp_CoolWhite_3000K_TDS.pdf"},
		{"  spaced   out  ", "spaced_out_TDS.pdf"},
		{"keep-dash_and_underscore", "keep-dash_and_underscore_TDS.pdf"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Filename(tc.in))
	}
}
