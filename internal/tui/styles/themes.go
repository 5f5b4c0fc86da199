package styles

// DefaultTheme is the theme used when none is configured.
const DefaultTheme = "rsvp"

// NewRSVPTheme creates the default dark theme.
func NewRSVPTheme() *Theme {
	return &Theme{
		Name:   "rsvp",
		IsDark: true,

		Primary:   ParseHex("#2E86C1"), // Steel blue
		Secondary: ParseHex("#48C9B0"), // Teal
		Accent:    ParseHex("#F5B041"), // Amber

		BgBase:      ParseHex("#1B2631"),
		BgSubtle:    ParseHex("#283747"),
		BgHighlight: ParseHex("#34495E"),

		FgBase:     ParseHex("#F4F6F7"),
		FgMuted:    ParseHex("#AAB7B8"),
		FgSubtle:   ParseHex("#717D7E"),
		FgInverted: ParseHex("#17202A"),

		Border:      ParseHex("#5D6D7E"),
		BorderFocus: ParseHex("#F5B041"),

		Success: ParseHex("#27AE60"),
		Error:   ParseHex("#E74C3C"),
		Warning: ParseHex("#F39C12"),
		Info:    ParseHex("#3498DB"),
	}
}

// NewHighContrastTheme creates a black and white theme with saturated
// accents for low-vision users.
func NewHighContrastTheme() *Theme {
	return &Theme{
		Name:   "high-contrast",
		IsDark: true,

		Primary:   ParseHex("#FFFF00"),
		Secondary: ParseHex("#00FFFF"),
		Accent:    ParseHex("#FFFF00"),

		BgBase:      ParseHex("#000000"),
		BgSubtle:    ParseHex("#1A1A1A"),
		BgHighlight: ParseHex("#333333"),

		FgBase:     ParseHex("#FFFFFF"),
		FgMuted:    ParseHex("#E0E0E0"),
		FgSubtle:   ParseHex("#BDBDBD"),
		FgInverted: ParseHex("#000000"),

		Border:      ParseHex("#FFFFFF"),
		BorderFocus: ParseHex("#FFFF00"),

		Success: ParseHex("#00FF00"),
		Error:   ParseHex("#FF4040"),
		Warning: ParseHex("#FFA500"),
		Info:    ParseHex("#00BFFF"),
	}
}
