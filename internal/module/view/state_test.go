package view

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		mode, admin, activity string
		want                  State
	}{
		{"", "", "", State{View: ViewHome}},
		{"qr", "", "", State{View: ViewHome, QR: true}},
		{"QR", "", "3", State{View: ViewHome, QR: true, Preset: 3}},
		{"hq", "", "", State{View: ViewAdmin}},
		{"", "true", "", State{View: ViewAdmin}},
		{"qr", "true", "", State{View: ViewAdmin}},
		{"", "false", "", State{View: ViewHome}},
		{"ranking", "", "", State{View: ViewRanking}},
		{"points", "", "", State{View: ViewPoints}},
		{"guide", "", "", State{View: ViewGuide}},
		{"vision", "", "", State{View: ViewVision}},
		{"unknown", "", "abc", State{View: ViewHome}},
		{"", "", "0", State{View: ViewHome}},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Parse(c.mode, c.admin, c.activity), "mode=%q admin=%q activity=%q", c.mode, c.admin, c.activity)
	}
}
