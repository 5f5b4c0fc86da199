package styles

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour/v2/ansi"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Semantic color names for consistency
type Theme struct {
	Name   string
	IsDark bool

	// Brand colors
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color

	// Background colors
	BgBase      color.Color
	BgSubtle    color.Color
	BgHighlight color.Color

	// Foreground colors
	FgBase     color.Color
	FgMuted    color.Color
	FgSubtle   color.Color
	FgInverted color.Color

	// Border colors
	Border      color.Color
	BorderFocus color.Color

	// Semantic colors
	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	styles *Styles
}

type Styles struct {
	Base  lipgloss.Style
	Title lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Screen tabs
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style

	// Form rows
	Section       lipgloss.Style
	Label         lipgloss.Style
	LabelFocused  lipgloss.Style
	Value         lipgloss.Style
	ValueReadOnly lipgloss.Style
	Modified      lipgloss.Style
	Option        lipgloss.Style
	OptionActive  lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Cursor       lipgloss.Style
	Placeholder  lipgloss.Style

	Border        lipgloss.Style
	BorderFocused lipgloss.Style

	Markdown ansi.StyleConfig
}

func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().
		Foreground(t.FgBase)

	return &Styles{
		Base: base,

		Title: base.
			Foreground(t.Accent).
			Bold(true),

		Muted: base.Foreground(t.FgMuted),

		Bold: base.Bold(true),

		Success: base.Foreground(t.Success),

		Error: base.Foreground(t.Error),

		Warning: base.Foreground(t.Warning),

		Info: base.Foreground(t.Info),

		Tab: base.
			Foreground(t.FgSubtle).
			Padding(0, 2),

		ActiveTab: base.
			Foreground(t.Accent).
			Bold(true).
			Underline(true).
			Padding(0, 2),

		Section: base.
			Foreground(t.Secondary).
			Bold(true).
			MarginTop(1),

		Label: base,

		LabelFocused: base.
			Foreground(t.Accent).
			Bold(true),

		Value: base.Foreground(t.FgBase),

		ValueReadOnly: base.
			Foreground(t.FgSubtle).
			Italic(true),

		Modified: base.Foreground(t.Warning),

		Option: base.
			Foreground(t.FgMuted).
			Padding(0, 1),

		OptionActive: base.
			Background(t.Primary).
			Foreground(t.FgInverted).
			Padding(0, 1),

		Input: base.
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		InputFocused: base.
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus),

		Cursor: lipgloss.NewStyle().
			Background(t.Accent).
			Foreground(t.FgInverted),

		Placeholder: base.Foreground(t.FgSubtle),

		Border: base.
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		BorderFocused: base.
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus),

		Markdown: t.buildMarkdownStyles(),
	}
}

// Helper functions for style pointers
func boolPtr(b bool) *bool       { return &b }
func stringPtr(s string) *string { return &s }
func uintPtr(u uint) *uint       { return &u }

// buildMarkdownStyles covers what parameter help text uses: paragraphs,
// emphasis, inline code, lists and links.
func (t *Theme) buildMarkdownStyles() ansi.StyleConfig {
	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: stringPtr("#" + colorToHex(t.FgBase)),
			},
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: stringPtr("#" + colorToHex(t.FgMuted)),
			},
			Indent:      uintPtr(1),
			IndentToken: stringPtr("│ "),
		},
		List: ansi.StyleList{
			LevelIndent: 2,
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
				Color:       stringPtr("#" + colorToHex(t.Secondary)),
				Bold:        boolPtr(true),
			},
		},
		Text: ansi.StylePrimitive{
			Color: stringPtr("#" + colorToHex(t.FgBase)),
		},
		Strong: ansi.StylePrimitive{
			Bold: boolPtr(true),
		},
		Emph: ansi.StylePrimitive{
			Italic: boolPtr(true),
		},
		Paragraph: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
			},
		},
		Item: ansi.StylePrimitive{
			BlockPrefix: "• ",
		},
		Enumeration: ansi.StylePrimitive{
			BlockPrefix: ". ",
		},
		Link: ansi.StylePrimitive{
			Color:     stringPtr("#" + colorToHex(t.Info)),
			Underline: boolPtr(true),
		},
		LinkText: ansi.StylePrimitive{
			Color: stringPtr("#" + colorToHex(t.Info)),
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color:           stringPtr("#" + colorToHex(t.Accent)),
				BackgroundColor: stringPtr("#" + colorToHex(t.BgSubtle)),
			},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{
					Color:           stringPtr("#" + colorToHex(t.FgBase)),
					BackgroundColor: stringPtr("#" + colorToHex(t.BgSubtle)),
				},
				Margin: uintPtr(1),
			},
		},
	}
}

// Manager handles theme switching and registration
type Manager struct {
	themes  map[string]*Theme
	current *Theme
}

var defaultManager *Manager

func SetDefaultManager(m *Manager) {
	defaultManager = m
}

func DefaultManager() *Manager {
	if defaultManager == nil {
		defaultManager = NewManager(DefaultTheme)
	}
	return defaultManager
}

func CurrentTheme() *Theme {
	return DefaultManager().Current()
}

// NewManager registers the built-in themes and selects defaultTheme,
// falling back to DefaultTheme for unknown names.
func NewManager(defaultTheme string) *Manager {
	m := &Manager{
		themes: make(map[string]*Theme),
	}
	m.Register(NewRSVPTheme())
	m.Register(NewHighContrastTheme())

	m.current = m.themes[defaultTheme]
	if m.current == nil {
		m.current = m.themes[DefaultTheme]
	}
	return m
}

func (m *Manager) Register(theme *Theme) {
	m.themes[theme.Name] = theme
}

func (m *Manager) Current() *Theme {
	return m.current
}

func (m *Manager) SetTheme(name string) error {
	if theme, ok := m.themes[name]; ok {
		m.current = theme
		return nil
	}
	return fmt.Errorf("theme %s not found", name)
}

// List returns the registered theme names, sorted.
func (m *Manager) List() []string {
	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Color utility functions

// ParseHex converts hex string to color
func ParseHex(hex string) color.Color {
	var r, g, b uint8
	fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// RenderTitle renders text with the current theme's bold brand gradient.
func RenderTitle(text string) string {
	t := CurrentTheme()
	return ApplyBoldGradient(text, t.Primary, t.Secondary)
}

// ApplyBoldGradient renders text with a bold horizontal gradient
func ApplyBoldGradient(text string, color1, color2 color.Color) string {
	if text == "" {
		return ""
	}
	if len(text) == 1 {
		return lipgloss.NewStyle().Foreground(color1).Bold(true).Render(text)
	}

	// Handle Unicode properly
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, string(gr.Runes()))
	}

	var output strings.Builder
	colors := blendColors(len(clusters), color1, color2)
	for i, cluster := range clusters {
		style := lipgloss.NewStyle().Foreground(colors[i]).Bold(true)
		output.WriteString(style.Render(cluster))
	}
	return output.String()
}

// blendColors creates a gradient between colors
func blendColors(steps int, color1, color2 color.Color) []color.Color {
	if steps <= 0 {
		return nil
	}
	if steps == 1 {
		return []color.Color{color1}
	}

	colors := make([]color.Color, steps)

	// HCL blending is perceptually uniform
	c1, _ := colorful.MakeColor(color1)
	c2, _ := colorful.MakeColor(color2)
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		colors[i] = c1.BlendHcl(c2, t)
	}
	return colors
}

// colorToHex converts color to hex string
func colorToHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("%02x%02x%02x", r>>8, g>>8, b>>8)
}
