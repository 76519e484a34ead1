package theme

import (
	"testing"

	"github.com/grovetools/ctnotes/config"
	"github.com/stretchr/testify/assert"
)

func TestResolveName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gruvbox", "gruvbox"},
		{"Gruvbox Dark", "gruvbox"},
		{"kanagawa_wave", "kanagawa"},
		{"terminal", "terminal"},
		{"does-not-exist", "kanagawa"},
		{"", "kanagawa"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveName(tt.in), tt.in)
	}
}

func TestNewThemeWithName(t *testing.T) {
	th := NewThemeWithName("terminal")
	assert.Equal(t, "terminal", th.Name)
	assert.NotNil(t, th.Colors.Green)
	assert.Equal(t, []string{"gruvbox", "kanagawa", "terminal"}, Names())
}

func TestLoadIcons(t *testing.T) {
	t.Setenv("CTNOTES_ICONS", "")

	cfg := config.Default()
	assert.Equal(t, "nerd", LoadIcons(cfg).Name)

	cfg.TUI.Icons = "ascii"
	assert.Equal(t, "ascii", LoadIcons(cfg).Name)
	assert.Equal(t, "✓", LoadIcons(cfg).Success)

	t.Setenv("CTNOTES_ICONS", "nerd")
	assert.Equal(t, "nerd", LoadIcons(cfg).Name, "environment wins over config")

	assert.Equal(t, "nerd", LoadIcons(nil).Name)
}
