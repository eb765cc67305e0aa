package korekta

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	Providers [NumProviders]int // Panel header accent per provider
	Added     int               // Words inserted by a correction
	Removed   int               // Words dropped by a correction
	Error     int               // Failed panels and status errors
	Success   int               // Completed badge
	Muted     int               // Status bar, placeholders, cancelled panels
	Accent    int               // Selected panel, headings
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Providers: [NumProviders]int{
			OpenAI:    2,
			Anthropic: 3,
			Gemini:    4,
			DeepSeek:  5,
		},
		Added:   2,
		Removed: 1,
		Error:   1,
		Success: 2,
		Muted:   8,
		Accent:  6,
	}
}
