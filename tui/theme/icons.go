package theme

import (
	"os"
	"strings"

	"github.com/grovetools/ctnotes/config"
)

// Icons is one complete icon set.
type Icons struct {
	Name string

	Window            string
	Document          string
	DocumentEncrypted string
	Folder            string
	Success           string
	Error             string
	Warning           string
	Info              string
	Arrow             string
	Bullet            string
	Select            string
	Watch             string
}

var nerdIcons = Icons{
	Name:              "nerd",
	Window:            "\ueb7f", // cod-window
	Document:          "\U000F039A", // md-note
	DocumentEncrypted: "\U000F033E", // md-lock
	Folder:            "\ue5ff", // custom-folder
	Success:           "\U000F012C", // md-check
	Error:             "\uea87", // cod-error
	Warning:           "\uf071", // fa-warning
	Info:              "\U000F02FC", // md-information
	Arrow:             "\U000F0054", // md-arrow_right
	Bullet:            "\uf444", // oct-dot_fill
	Select:            "\U000F0C52", // md-checkbox_outline
	Watch:             "\U000F0208", // md-eye
}

var asciiIcons = Icons{
	Name:              "ascii",
	Window:            "[]",
	Document:          "▢",
	DocumentEncrypted: "▣",
	Folder:            "▸",
	Success:           "✓",
	Error:             "✗",
	Warning:           "⚠",
	Info:              "ℹ",
	Arrow:             "→",
	Bullet:            "•",
	Select:            "▶",
	Watch:             "◉",
}

// NewIcons returns the icon set with the given name; anything but "ascii"
// yields the nerd font set.
func NewIcons(name string) Icons {
	if strings.EqualFold(strings.TrimSpace(name), "ascii") {
		return asciiIcons
	}
	return nerdIcons
}

// LoadIcons picks the icon set from CTNOTES_ICONS, then the config file.
func LoadIcons(cfg *config.Config) Icons {
	if env := os.Getenv("CTNOTES_ICONS"); env != "" {
		return NewIcons(env)
	}
	if cfg != nil && cfg.TUI.Icons != "" {
		return NewIcons(cfg.TUI.Icons)
	}
	return NewIcons(config.DefaultIcons)
}
