package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines a complete color palette for the editor.
type Theme struct {
	Name                                        string
	Primary, Secondary, Success, Warning, Error color.Color
	Muted, Dim, Border                          color.Color

	// Block chrome
	SelectedBorder color.Color
	EditingBorder  color.Color
	ReadOnly       color.Color
	CommentBg      color.Color

	// Badges per block type
	BadgeHeading, BadgeParagraph, BadgeList, BadgeTable color.Color

	// Gradient endpoints (A=from, B=to)
	GradA color.Color
	GradB color.Color
}

// Built-in themes.
var (
	darkTheme = Theme{
		Name:           "dark",
		Primary:        lipgloss.Color("#7C3AED"),
		Secondary:      lipgloss.Color("#06B6D4"),
		Success:        lipgloss.Color("#22C55E"),
		Warning:        lipgloss.Color("#F59E0B"),
		Error:          lipgloss.Color("#EF4444"),
		Muted:          lipgloss.Color("#6B7280"),
		Dim:            lipgloss.Color("#374151"),
		Border:         lipgloss.Color("#4B5563"),
		SelectedBorder: lipgloss.Color("#7C3AED"),
		EditingBorder:  lipgloss.Color("#22C55E"),
		ReadOnly:       lipgloss.Color("#9CA3AF"),
		CommentBg:      lipgloss.Color("#1F2937"),
		BadgeHeading:   lipgloss.Color("#A78BFA"),
		BadgeParagraph: lipgloss.Color("#60A5FA"),
		BadgeList:      lipgloss.Color("#34D399"),
		BadgeTable:     lipgloss.Color("#FBBF24"),
		GradA:          lipgloss.Color("#7C3AED"),
		GradB:          lipgloss.Color("#06B6D4"),
	}

	lightTheme = Theme{
		Name:           "light",
		Primary:        lipgloss.Color("#6D28D9"),
		Secondary:      lipgloss.Color("#0891B2"),
		Success:        lipgloss.Color("#16A34A"),
		Warning:        lipgloss.Color("#D97706"),
		Error:          lipgloss.Color("#DC2626"),
		Muted:          lipgloss.Color("#9CA3AF"),
		Dim:            lipgloss.Color("#D1D5DB"),
		Border:         lipgloss.Color("#9CA3AF"),
		SelectedBorder: lipgloss.Color("#6D28D9"),
		EditingBorder:  lipgloss.Color("#16A34A"),
		ReadOnly:       lipgloss.Color("#6B7280"),
		CommentBg:      lipgloss.Color("#F3F4F6"),
		BadgeHeading:   lipgloss.Color("#7C3AED"),
		BadgeParagraph: lipgloss.Color("#2563EB"),
		BadgeList:      lipgloss.Color("#059669"),
		BadgeTable:     lipgloss.Color("#B45309"),
		GradA:          lipgloss.Color("#6D28D9"),
		GradB:          lipgloss.Color("#0891B2"),
	}

	catppuccinTheme = Theme{
		Name:           "catppuccin",
		Primary:        lipgloss.Color("#CBA6F7"),
		Secondary:      lipgloss.Color("#89DCEB"),
		Success:        lipgloss.Color("#A6E3A1"),
		Warning:        lipgloss.Color("#F9E2AF"),
		Error:          lipgloss.Color("#F38BA8"),
		Muted:          lipgloss.Color("#6C7086"),
		Dim:            lipgloss.Color("#45475A"),
		Border:         lipgloss.Color("#585B70"),
		SelectedBorder: lipgloss.Color("#CBA6F7"),
		EditingBorder:  lipgloss.Color("#A6E3A1"),
		ReadOnly:       lipgloss.Color("#9399B2"),
		CommentBg:      lipgloss.Color("#1E1E2E"),
		BadgeHeading:   lipgloss.Color("#CBA6F7"),
		BadgeParagraph: lipgloss.Color("#89B4FA"),
		BadgeList:      lipgloss.Color("#A6E3A1"),
		BadgeTable:     lipgloss.Color("#F9E2AF"),
		GradA:          lipgloss.Color("#CBA6F7"),
		GradB:          lipgloss.Color("#89DCEB"),
	}

	tokyoNightTheme = Theme{
		Name:           "tokyo-night",
		Primary:        lipgloss.Color("#7AA2F7"),
		Secondary:      lipgloss.Color("#7DCFFF"),
		Success:        lipgloss.Color("#9ECE6A"),
		Warning:        lipgloss.Color("#E0AF68"),
		Error:          lipgloss.Color("#F7768E"),
		Muted:          lipgloss.Color("#565F89"),
		Dim:            lipgloss.Color("#3B4261"),
		Border:         lipgloss.Color("#414868"),
		SelectedBorder: lipgloss.Color("#7AA2F7"),
		EditingBorder:  lipgloss.Color("#9ECE6A"),
		ReadOnly:       lipgloss.Color("#737AA2"),
		CommentBg:      lipgloss.Color("#1A1B26"),
		BadgeHeading:   lipgloss.Color("#BB9AF7"),
		BadgeParagraph: lipgloss.Color("#7AA2F7"),
		BadgeList:      lipgloss.Color("#9ECE6A"),
		BadgeTable:     lipgloss.Color("#E0AF68"),
		GradA:          lipgloss.Color("#7AA2F7"),
		GradB:          lipgloss.Color("#7DCFFF"),
	}
)

// Themes maps theme names to their definitions.
var Themes = map[string]Theme{
	"dark":        darkTheme,
	"light":       lightTheme,
	"catppuccin":  catppuccinTheme,
	"tokyo-night": tokyoNightTheme,
}

// ThemeNames lists available themes in display order.
var ThemeNames = []string{"dark", "light", "catppuccin", "tokyo-night"}

// CurrentThemeName tracks the active theme name.
var CurrentThemeName = "dark"
