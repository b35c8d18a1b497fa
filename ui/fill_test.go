package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillHeight(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		height int
		lines  int
	}{
		{name: "pads short view", in: "a\nb", height: 5, lines: 5},
		{name: "keeps tall view", in: "a\nb\nc", height: 2, lines: 3},
		{name: "zero height", in: "a", height: 0, lines: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FillHeight(tt.in, tt.height)
			assert.Len(t, strings.Split(got, "\n"), tt.lines)
			assert.True(t, strings.HasPrefix(got, tt.in))
		})
	}
}
