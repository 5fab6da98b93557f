package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Violet    = lipgloss.Color("#8B5CF6")
	Pink      = lipgloss.Color("#EC4899")
	SlateDark = lipgloss.Color("#1F2937")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Green     = lipgloss.Color("#10B981")
	Red       = lipgloss.Color("#EF4444")
	Yellow    = lipgloss.Color("#F59E0B")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Violet)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	StrikeStyle = lipgloss.NewStyle().
			Foreground(DimGray).
			Strikethrough(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Violet).
			Padding(0, 1)
)

// Tab bar styles
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Violet).
			Padding(0, 2)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Background(SlateDark).
				Padding(0, 2)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Pink).
			Padding(1, 3)

	ProgressFilled = lipgloss.NewStyle().Foreground(Pink)
	ProgressEmpty  = lipgloss.NewStyle().Foreground(SlateDark)
)

// Raw status characters (unstyled)
const (
	PendingChar = "○"
	DoneChar    = "✓"
	HeartChar   = "♥"
)

// Status indicator styles
var (
	PendingStyle = lipgloss.NewStyle().Foreground(Violet)
	DoneStyle    = lipgloss.NewStyle().Foreground(Green)
	HeartStyle   = lipgloss.NewStyle().Foreground(Pink)
)

// Pre-rendered status indicators
var (
	PendingDot = PendingStyle.Render(PendingChar)
	DoneCheck  = DoneStyle.Render(DoneChar)
	Heart      = HeartStyle.Render(HeartChar)
)
