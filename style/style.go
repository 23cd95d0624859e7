package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors, initialized to dark theme defaults. Updated via SetTheme().
var (
	Primary   color.Color = lipgloss.Color("#7C3AED")
	Secondary color.Color = lipgloss.Color("#06B6D4")
	Success   color.Color = lipgloss.Color("#22C55E")
	Warning   color.Color = lipgloss.Color("#F59E0B")
	Error     color.Color = lipgloss.Color("#EF4444")
	Muted     color.Color = lipgloss.Color("#6B7280")
	Dim       color.Color = lipgloss.Color("#374151")
	Border    color.Color = lipgloss.Color("#4B5563")

	SelectedBorderColor color.Color = lipgloss.Color("#7C3AED")
	EditingBorderColor  color.Color = lipgloss.Color("#22C55E")
	ReadOnlyColor       color.Color = lipgloss.Color("#9CA3AF")
	CommentBgColor      color.Color = lipgloss.Color("#1F2937")

	BadgeHeadingColor   color.Color = lipgloss.Color("#A78BFA")
	BadgeParagraphColor color.Color = lipgloss.Color("#60A5FA")
	BadgeListColor      color.Color = lipgloss.Color("#34D399")
	BadgeTableColor     color.Color = lipgloss.Color("#FBBF24")

	GradColorA color.Color = lipgloss.Color("#7C3AED")
	GradColorB color.Color = lipgloss.Color("#06B6D4")
)

// Base styles, rebuilt when the theme changes via rebuildStyles().
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style
	Hint      lipgloss.Style

	// Header
	HeaderTitle     lipgloss.Style
	HeaderDetail    lipgloss.Style
	HeaderBadge     lipgloss.Style
	HeaderSeparator lipgloss.Style

	// Block frame
	BlockNormal   lipgloss.Style
	BlockSelected lipgloss.Style
	BlockEditing  lipgloss.Style

	// Toolbar
	ToolbarReadOnly lipgloss.Style
	ToolbarEditing  lipgloss.Style
	ToolbarComments lipgloss.Style
	ToolbarPending  lipgloss.Style

	// Content
	HeadingText  [6]lipgloss.Style
	ListBullet   lipgloss.Style
	TableHeader  lipgloss.Style
	TableCell    lipgloss.Style
	TableBorder  lipgloss.Style
	ReadOnlyText lipgloss.Style

	// Comments
	CommentBox    lipgloss.Style
	CommentAuthor lipgloss.Style
	CommentTime   lipgloss.Style
	CommentBody   lipgloss.Style
	CommentEmpty  lipgloss.Style

	// Status bar
	StatusBar lipgloss.Style
	StatusKey lipgloss.Style

	// Scrollbar
	ScrollThumb lipgloss.Style
	ScrollTrack lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme applies a named theme, updating all color vars and rebuilding styles.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	SelectedBorderColor = t.SelectedBorder
	EditingBorderColor = t.EditingBorder
	ReadOnlyColor = t.ReadOnly
	CommentBgColor = t.CommentBg
	BadgeHeadingColor = t.BadgeHeading
	BadgeParagraphColor = t.BadgeParagraph
	BadgeListColor = t.BadgeList
	BadgeTableColor = t.BadgeTable
	GradColorA = t.GradA
	GradColorB = t.GradB
	rebuildStyles()
	return true
}

// IsDark returns whether the current theme is dark.
func IsDark() bool {
	return CurrentThemeName != "light"
}

// Badge returns the badge style for a block type name.
func Badge(kind string) lipgloss.Style {
	c := BadgeParagraphColor
	switch kind {
	case "heading":
		c = BadgeHeadingColor
	case "list":
		c = BadgeListColor
	case "table":
		c = BadgeTableColor
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

func rebuildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Hint = lipgloss.NewStyle().Foreground(Muted).Italic(true)

	HeaderTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	HeaderDetail = lipgloss.NewStyle().Foreground(Muted)
	HeaderBadge = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	HeaderSeparator = lipgloss.NewStyle().Foreground(Dim)

	frame := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	BlockNormal = frame.BorderForeground(Dim)
	BlockSelected = frame.BorderStyle(lipgloss.ThickBorder()).BorderForeground(SelectedBorderColor)
	BlockEditing = frame.BorderStyle(lipgloss.ThickBorder()).BorderForeground(EditingBorderColor)

	ToolbarReadOnly = lipgloss.NewStyle().Foreground(ReadOnlyColor)
	ToolbarEditing = lipgloss.NewStyle().Foreground(EditingBorderColor).Bold(true)
	ToolbarComments = lipgloss.NewStyle().Foreground(Secondary)
	ToolbarPending = lipgloss.NewStyle().Foreground(Warning)

	for i := range HeadingText {
		s := lipgloss.NewStyle().Bold(true)
		switch i {
		case 0:
			s = s.Foreground(Primary).Underline(true)
		case 1:
			s = s.Foreground(Primary)
		case 2:
			s = s.Foreground(Secondary)
		}
		HeadingText[i] = s
	}
	ListBullet = lipgloss.NewStyle().Foreground(Secondary)
	TableHeader = lipgloss.NewStyle().Bold(true).Foreground(Primary).Padding(0, 1)
	TableCell = lipgloss.NewStyle().Padding(0, 1)
	TableBorder = lipgloss.NewStyle().Foreground(Border)
	ReadOnlyText = lipgloss.NewStyle().Foreground(ReadOnlyColor)

	CommentBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
	CommentAuthor = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	CommentTime = lipgloss.NewStyle().Foreground(Muted)
	CommentBody = lipgloss.NewStyle()
	CommentEmpty = lipgloss.NewStyle().Foreground(Muted).Italic(true)

	StatusBar = lipgloss.NewStyle().Foreground(Muted)
	StatusKey = lipgloss.NewStyle().Foreground(Secondary)

	ScrollThumb = lipgloss.NewStyle().Foreground(Primary)
	ScrollTrack = lipgloss.NewStyle().Foreground(Dim)

	toast := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	ToastInfo = toast.Foreground(Secondary)
	ToastSuccess = toast.Foreground(Success)
	ToastWarning = toast.Foreground(Warning)
	ToastError = toast.Foreground(Error)
}
