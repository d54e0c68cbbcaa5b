package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	PitchGreen = lipgloss.Color("#22C55E")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Amber      = lipgloss.Color("#F59E0B")
	Red        = lipgloss.Color("#EF4444")
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
			Foreground(PitchGreen)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	PriceStyle = lipgloss.NewStyle().
			Foreground(Amber)
)

// Header and filter chips
var (
	HeaderStyle = lipgloss.NewStyle().
			Padding(0, 1).
			MarginBottom(1)

	ChipStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(PitchGreen).
			Padding(0, 1)

	EmptyChipStyle = lipgloss.NewStyle().
			Foreground(DimGray).
			Padding(0, 1)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	MatchStyle = lipgloss.NewStyle().
			Foreground(PitchGreen).
			Bold(true)
)

// Filter input styles
var (
	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(PitchGreen)

	FilterStyle = lipgloss.NewStyle().
			Foreground(White)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(PitchGreen)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PitchGreen).
			Padding(1, 2)
)

// SpinnerFrames animate plain-terminal progress outside the TUI
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
