package reldate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-reldate/internal/reldate"
)

func TestDescription(t *testing.T) {
	tests := []struct {
		expr     string
		expected string
	}{
		{"+3D", "Add 3 Weekdays"},
		{"+d", "Add 1 Day"},
		{"-2y", "Subtract 2 Years"},
		{"-1e", "Subtract 1 Weekend day"},
		{"^M", "Start of Month"},
		{"^!fri", "Start of Last Friday"},
		{"@2020y", "Move to year 2020"},
		{"@3M", "Move to March"},
		{"@15d", "Move to Day 15"},
		{"@8H", "Move to Hour 8"},
		{"@fri", "Move to first Friday"},
		{"@2fri", "Move to second Friday"},
		{"@7fri", "Move to 7th Friday"},
		{"@!fri", "Move to last Friday"},
		{"@2!fri", "Move to second last Friday"},
		{"^M>4mon", "Start of Month Current or next fourth Monday"},
		{"<jan", "Current or previous January"},
		{"@11M@4thu", "Move to November Move to fourth Thursday"},
		{"?sat", "If Saturday"},
		{"?sat{-d}", "If Saturday then Subtract 1 Day"},
		{"?sat{-d}{+d}", "If Saturday then Subtract 1 Day else Add 1 Day"},
		{"?sat{}{+d}", "If Saturday then else Add 1 Day"},
		{"?e{?sat{+2d}}", "If Weekend day then If Saturday then Add 2 Days"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			rd, err := reldate.Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rd.Description())
		})
	}
}

func TestUnit_Describe(t *testing.T) {
	reg := reldate.DefaultRegistry()

	tests := []struct {
		key      string
		n        int
		expected string
	}{
		{"M", 1, "January"},
		{"M", 12, "December"},
		{"M", 13, "January"},
		{"M", 0, "December"},
		{"w", 3, "Week 3"},
		{"S", 250, "Millisecond 250"},
		{"e", 2, "Weekend day 2"},
		{"mon", 21, "21st Monday"},
		{"mon", 12, "12th Monday"},
		{"!sun", 3, "third last Sunday"},
		{"dec", 5, "December"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			u, ok := reg.Unit(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.expected, u.Describe(tt.n))
		})
	}
}
