package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DealStatusStyle maps a deal pipeline state to its display color.
// Terminal states are green (closed, brokerage received) or red
// (cancelled); in-flight states shade from blue to yellow.
func DealStatusStyle(s domain.DealStatus) lipgloss.Style {
	switch s {
	case domain.DealClosed, domain.DealBrokerageReceived:
		return StyleGreen
	case domain.DealCancelled:
		return StyleRed
	case domain.DealAgreement, domain.DealRegistry:
		return StylePurple
	case domain.DealFollowUp:
		return StyleYellow
	default:
		return StyleBlue
	}
}

// DealStatusPill renders a colored deal status label.
func DealStatusPill(s domain.DealStatus) string {
	return DealStatusStyle(s).Render(string(s))
}

// CustomerStatusPill renders a colored customer pipeline label.
func CustomerStatusPill(s domain.CustomerStatus) string {
	switch s {
	case domain.CustomerClosed:
		return StyleGreen.Render(string(s))
	case domain.CustomerDealLost:
		return StyleRed.Render(string(s))
	case domain.CustomerFollowUp:
		return StyleYellow.Render(string(s))
	default:
		return StyleBlue.Render(string(s))
	}
}

// PropertyStatusPill renders the listing status.
func PropertyStatusPill(s domain.PropertyStatus) string {
	if s == domain.ForRent {
		return StylePurple.Render(string(s))
	}
	return StyleBlue.Render(string(s))
}

// HotBadge marks hot listings.
func HotBadge(hot bool) string {
	if hot {
		return StyleRed.Render("🔥")
	}
	return "  "
}

// ImportantBadge marks starred customers.
func ImportantBadge(important bool) string {
	if important {
		return StyleYellow.Render("★")
	}
	return " "
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Money renders a formatted currency string in green.
func Money(formatted string) string {
	return StyleGreen.Render(formatted)
}
