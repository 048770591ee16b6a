package tui

import "github.com/charmbracelet/lipgloss"

// palette holds the colors of one theme.
type palette struct {
	text    lipgloss.Color
	subtext lipgloss.Color
	overlay lipgloss.Color
	accent  lipgloss.Color
	match   lipgloss.Color
	ok      lipgloss.Color
	err     lipgloss.Color
	surface lipgloss.Color
}

var palettes = map[string]palette{
	"latte": {
		text:    lipgloss.Color("#4c4f69"),
		subtext: lipgloss.Color("#6c6f85"),
		overlay: lipgloss.Color("#9ca0b0"),
		accent:  lipgloss.Color("#8839ef"),
		match:   lipgloss.Color("#fe640b"),
		ok:      lipgloss.Color("#40a02b"),
		err:     lipgloss.Color("#d20f39"),
		surface: lipgloss.Color("#ccd0da"),
	},
	"mocha": {
		text:    lipgloss.Color("#cdd6f4"),
		subtext: lipgloss.Color("#a6adc8"),
		overlay: lipgloss.Color("#6c7086"),
		accent:  lipgloss.Color("#cba6f7"),
		match:   lipgloss.Color("#fab387"),
		ok:      lipgloss.Color("#a6e3a1"),
		err:     lipgloss.Color("#f38ba8"),
		surface: lipgloss.Color("#313244"),
	},
}

type styles struct {
	prompt    lipgloss.Style
	score     lipgloss.Style
	name      lipgloss.Style
	matched   lipgloss.Style
	comment   lipgloss.Style
	selected  lipgloss.Style
	dim       lipgloss.Style
	statusBar lipgloss.Style
	success   lipgloss.Style
	errorText lipgloss.Style
}

func newStyles(theme string) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes["latte"]
	}
	return styles{
		prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),

		score: lipgloss.NewStyle().
			Foreground(p.overlay),

		name: lipgloss.NewStyle().
			Foreground(p.text),

		matched: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.match),

		comment: lipgloss.NewStyle().
			Foreground(p.subtext),

		selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),

		dim: lipgloss.NewStyle().
			Foreground(p.overlay),

		statusBar: lipgloss.NewStyle().
			Foreground(p.subtext).
			Background(p.surface).
			Padding(0, 1),

		success: lipgloss.NewStyle().
			Foreground(p.ok),

		errorText: lipgloss.NewStyle().
			Foreground(p.err),
	}
}
