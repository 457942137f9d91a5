package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds the rendered lipgloss styles for a theme.
type Styles struct {
	Palette *ColorPalette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style
	CardMeta     lipgloss.Style

	Modal      lipgloss.Style
	ModalTitle lipgloss.Style

	Tile        lipgloss.Style
	TileFocused lipgloss.Style

	FormLabel  lipgloss.Style
	FormActive lipgloss.Style

	ErrorText   lipgloss.Style
	WarningText lipgloss.Style
	Muted       lipgloss.Style
	Success     lipgloss.Style

	HelpBar lipgloss.Style
	HelpKey lipgloss.Style
}

// New builds the style set for a theme.
func New(theme ThemeName) *Styles {
	p := GetPalette(theme)

	return &Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Border).
			MarginBottom(1).
			PaddingBottom(1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 2),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 2).
			Bold(true),

		CardTitle: lipgloss.NewStyle().
			Foreground(p.Text),

		CardMeta: lipgloss.NewStyle().
			Foreground(p.Muted),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Primary).
			Padding(1, 3),

		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text),

		Tile: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2).
			Width(24),

		TileFocused: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.Secondary).
			Padding(1, 2).
			Width(24),

		FormLabel: lipgloss.NewStyle().
			Foreground(p.Muted),

		FormActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		ErrorText: lipgloss.NewStyle().
			Foreground(p.Error),

		WarningText: lipgloss.NewStyle().
			Foreground(p.Warning),

		Muted: lipgloss.NewStyle().
			Foreground(p.Muted),

		Success: lipgloss.NewStyle().
			Foreground(p.Secondary),

		HelpBar: lipgloss.NewStyle().
			Foreground(p.Muted).
			MarginTop(1),

		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary),
	}
}
