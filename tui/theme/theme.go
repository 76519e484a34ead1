package theme

import (
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/ctnotes/config"
)

const defaultThemeName = config.DefaultTheme

// palette is a pair of light/dark hex values per color slot.
type palette struct {
	green, yellow, red, orange, cyan, blue, violet, pink [2]string
	lightText, mutedText, darkText, border               [2]string
	selectedBackground, subtleBackground                 [2]string
}

var kanagawaPalette = palette{
	green:              [2]string{"#4E7C5A", "#98BB6C"},
	yellow:             [2]string{"#A68A64", "#FF9E3B"},
	red:                [2]string{"#C34043", "#FF5D62"},
	orange:             [2]string{"#CC6B4E", "#FFA066"},
	cyan:               [2]string{"#5B8BBE", "#7E9CD8"},
	blue:               [2]string{"#4F7CAC", "#7FB4CA"},
	violet:             [2]string{"#674D7A", "#957FB8"},
	pink:               [2]string{"#B35C74", "#D27E99"},
	lightText:          [2]string{"#2B2F42", "#DCD7BA"},
	mutedText:          [2]string{"#6C7086", "#727169"},
	darkText:           [2]string{"#E6E9EF", "#1D1C19"},
	border:             [2]string{"#B5BDC5", "#363646"},
	selectedBackground: [2]string{"#E2E6F3", "#223249"},
	subtleBackground:   [2]string{"#F7F7FB", "#1F1F28"},
}

var gruvboxPalette = palette{
	green:              [2]string{"#98971A", "#B8BB26"},
	yellow:             [2]string{"#D79921", "#FABD2F"},
	red:                [2]string{"#CC241D", "#FB4934"},
	orange:             [2]string{"#D65D0E", "#FE8019"},
	cyan:               [2]string{"#458588", "#83A598"},
	blue:               [2]string{"#076678", "#458588"},
	violet:             [2]string{"#8F3F71", "#B16286"},
	pink:               [2]string{"#B57679", "#D3869B"},
	lightText:          [2]string{"#3C3836", "#EBDBB2"},
	mutedText:          [2]string{"#928374", "#BDAE93"},
	darkText:           [2]string{"#F9F5D7", "#1D2021"},
	border:             [2]string{"#D5C4A1", "#504945"},
	selectedBackground: [2]string{"#F2E5BC", "#32302F"},
	subtleBackground:   [2]string{"#FBF1C7", "#282828"},
}

// Colors is the resolved color set of a theme.
type Colors struct {
	Green              lipgloss.TerminalColor
	Yellow             lipgloss.TerminalColor
	Red                lipgloss.TerminalColor
	Orange             lipgloss.TerminalColor
	Cyan               lipgloss.TerminalColor
	Blue               lipgloss.TerminalColor
	Violet             lipgloss.TerminalColor
	Pink               lipgloss.TerminalColor
	LightText          lipgloss.TerminalColor
	MutedText          lipgloss.TerminalColor
	DarkText           lipgloss.TerminalColor
	Border             lipgloss.TerminalColor
	SelectedBackground lipgloss.TerminalColor
	SubtleBackground   lipgloss.TerminalColor
}

// Theme holds the pre-configured styles used across ctnotes.
type Theme struct {
	Name   string
	Colors Colors

	Header lipgloss.Style
	Title  lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Bold     lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	Box  lipgloss.Style
	Code lipgloss.Style

	Placeholder lipgloss.Style
	Highlight   lipgloss.Style
	Accent      lipgloss.Style
}

var themeRegistry = map[string]func() Colors{
	"kanagawa": func() Colors { return kanagawaPalette.colors() },
	"gruvbox":  func() Colors { return gruvboxPalette.colors() },
	"terminal": newTerminalColors,
}

var themeAliases = map[string]string{
	"kanagawa-dark":   "kanagawa",
	"kanagawa-dragon": "kanagawa",
	"kanagawa-wave":   "kanagawa",
	"gruvbox-dark":    "gruvbox",
	"gruvbox-light":   "gruvbox",
}

// DefaultTheme is the theme selected by CTNOTES_THEME or the config file.
var DefaultTheme = NewThemeWithName(getThemeName())

// NewThemeWithName constructs a theme from a palette name. Unknown names fall
// back to the default palette.
func NewThemeWithName(name string) *Theme {
	return newThemeFromColors(ResolveName(name), themeRegistry[ResolveName(name)]())
}

// Names lists the registered palette names.
func Names() []string {
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveName maps a user supplied theme name or alias to a registered palette.
func ResolveName(name string) string {
	key := normalizeThemeName(name)
	if alias, ok := themeAliases[key]; ok {
		key = alias
	}
	if _, ok := themeRegistry[key]; ok {
		return key
	}
	return defaultThemeName
}

// RenderStatus renders text with the appropriate status style.
func RenderStatus(status, text string) string {
	switch status {
	case "success":
		return DefaultTheme.Success.Render(text)
	case "error":
		return DefaultTheme.Error.Render(text)
	case "warning":
		return DefaultTheme.Warning.Render(text)
	case "info":
		return DefaultTheme.Info.Render(text)
	default:
		return text
	}
}

func newThemeFromColors(name string, colors Colors) *Theme {
	return &Theme{
		Name:   name,
		Colors: colors,

		Header: lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Title:  lipgloss.NewStyle().Bold(true).Underline(true),

		Success: lipgloss.NewStyle().Foreground(colors.Green).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(colors.Red).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colors.Yellow).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(colors.Cyan).Bold(true),

		Bold:   lipgloss.NewStyle().Bold(true),
		Normal: lipgloss.NewStyle(),
		Muted:  lipgloss.NewStyle().Faint(true),
		Selected: lipgloss.NewStyle().
			Background(colors.SelectedBackground).
			Foreground(colors.LightText),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1),
		Code: lipgloss.NewStyle().
			Background(colors.SubtleBackground).
			Foreground(colors.LightText).
			Padding(0, 1),

		Placeholder: lipgloss.NewStyle().Foreground(colors.MutedText).Italic(true),
		Highlight:   lipgloss.NewStyle().Foreground(colors.Orange).Bold(true),
		Accent:      lipgloss.NewStyle().Foreground(colors.Violet).Bold(true),
	}
}

func (p palette) colors() Colors {
	adaptive := func(pair [2]string) lipgloss.TerminalColor {
		return lipgloss.AdaptiveColor{Light: pair[0], Dark: pair[1]}
	}
	return Colors{
		Green:              adaptive(p.green),
		Yellow:             adaptive(p.yellow),
		Red:                adaptive(p.red),
		Orange:             adaptive(p.orange),
		Cyan:               adaptive(p.cyan),
		Blue:               adaptive(p.blue),
		Violet:             adaptive(p.violet),
		Pink:               adaptive(p.pink),
		LightText:          adaptive(p.lightText),
		MutedText:          adaptive(p.mutedText),
		DarkText:           adaptive(p.darkText),
		Border:             adaptive(p.border),
		SelectedBackground: adaptive(p.selectedBackground),
		SubtleBackground:   adaptive(p.subtleBackground),
	}
}

// newTerminalColors uses ANSI indexes so the user's terminal scheme applies.
func newTerminalColors() Colors {
	return Colors{
		Green:              lipgloss.Color("2"),
		Yellow:             lipgloss.Color("3"),
		Red:                lipgloss.Color("1"),
		Orange:             lipgloss.Color("208"),
		Cyan:               lipgloss.Color("6"),
		Blue:               lipgloss.Color("4"),
		Violet:             lipgloss.Color("5"),
		Pink:               lipgloss.Color("13"),
		LightText:          lipgloss.Color("7"),
		MutedText:          lipgloss.Color("8"),
		DarkText:           lipgloss.Color("0"),
		Border:             lipgloss.Color("8"),
		SelectedBackground: lipgloss.Color("8"),
		SubtleBackground:   lipgloss.Color("0"),
	}
}

func normalizeThemeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	return normalized
}

func getThemeName() string {
	if theme := normalizeThemeName(os.Getenv("CTNOTES_THEME")); theme != "" {
		return theme
	}

	cfg, err := config.LoadDefault()
	if err != nil || cfg == nil {
		return defaultThemeName
	}
	if theme := normalizeThemeName(cfg.TUI.Theme); theme != "" {
		return theme
	}
	return defaultThemeName
}
