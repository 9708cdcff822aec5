// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#E6E6E6"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#6E6E6E"}
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#5C5C5C"}

	// Accent marks focus, the cursor and the active header button.
	AccentColor = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#A78BFA"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#4A4A4A"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#FF8787"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#54A0FF"}

	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#FFFFFF"}

	// Buttons
	ButtonTextColor             = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor        = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#5B21B6"}
	ButtonPrimaryFocusBgColor   = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#8B5CF6"}
	ButtonSecondaryBgColor      = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"}
	ButtonSecondaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#636E72", Dark: "#636E72"}
	ButtonDisabledBgColor       = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#2D2D2D"}
	ButtonDisabledTextColor     = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#6E6E6E"}

	// Chips
	ChipBgColor         = lipgloss.AdaptiveColor{Light: "#EDE9FE", Dark: "#3B3355"}
	ChipInvalidBgColor  = lipgloss.AdaptiveColor{Light: "#FFEBE9", Dark: "#5C2626"}
	ChipSelectedBgColor = lipgloss.AdaptiveColor{Light: "#C4B5FD", Dark: "#6D5BA8"}

	// Overlays
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#8C8C8C"}
)

// Styles derived from the palette. Rebuilt by ApplyTheme.
var (
	SelectionIndicatorStyle lipgloss.Style

	PrimaryButtonStyle          lipgloss.Style
	PrimaryButtonFocusedStyle   lipgloss.Style
	SecondaryButtonStyle        lipgloss.Style
	SecondaryButtonFocusedStyle lipgloss.Style
	DisabledButtonStyle         lipgloss.Style

	HeaderButtonStyle       lipgloss.Style
	HeaderButtonActiveStyle lipgloss.Style

	ChipStyle         lipgloss.Style
	ChipInvalidStyle  lipgloss.Style
	ChipSelectedStyle lipgloss.Style
	ChipCloseStyle    lipgloss.Style

	ErrorTextStyle lipgloss.Style
	MutedTextStyle lipgloss.Style
	TitleStyle     lipgloss.Style
)

func init() {
	rebuild()
}

func rebuild() {
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	button := lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(ButtonTextColor)
	focused := button.Underline(true).UnderlineSpaces(true)
	PrimaryButtonStyle = button.Background(ButtonPrimaryBgColor)
	PrimaryButtonFocusedStyle = focused.Background(ButtonPrimaryFocusBgColor)
	SecondaryButtonStyle = button.Background(ButtonSecondaryBgColor)
	SecondaryButtonFocusedStyle = focused.Background(ButtonSecondaryFocusBgColor)
	DisabledButtonStyle = button.Bold(false).
		Foreground(ButtonDisabledTextColor).
		Background(ButtonDisabledBgColor)

	HeaderButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderDefaultColor).
		Foreground(TextPrimaryColor)
	HeaderButtonActiveStyle = HeaderButtonStyle.
		BorderForeground(AccentColor).
		Foreground(AccentColor).
		Bold(true)

	chip := lipgloss.NewStyle().Padding(0, 1).Foreground(TextPrimaryColor)
	ChipStyle = chip.Background(ChipBgColor)
	ChipInvalidStyle = chip.Background(ChipInvalidBgColor).Foreground(StatusErrorColor)
	ChipSelectedStyle = chip.Background(ChipSelectedBgColor).Bold(true)
	ChipCloseStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	ErrorTextStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
	MutedTextStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(OverlayTitleColor)
}

// ApplyTheme overrides palette colors with hex values from config. Empty
// strings keep the defaults.
func ApplyTheme(accent, muted, errorColor, success string) {
	if accent != "" {
		AccentColor = lipgloss.AdaptiveColor{Light: accent, Dark: accent}
	}
	if muted != "" {
		TextMutedColor = lipgloss.AdaptiveColor{Light: muted, Dark: muted}
		BorderDefaultColor = lipgloss.AdaptiveColor{Light: muted, Dark: muted}
	}
	if errorColor != "" {
		StatusErrorColor = lipgloss.AdaptiveColor{Light: errorColor, Dark: errorColor}
	}
	if success != "" {
		StatusSuccessColor = lipgloss.AdaptiveColor{Light: success, Dark: success}
	}
	rebuild()
}
