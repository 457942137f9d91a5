package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hottake/hottake/internal/directory"
	"github.com/hottake/hottake/internal/session"
	"github.com/hottake/hottake/internal/util"
)

// maxCardTitleWidth keeps long debate titles from wrapping inside cards.
const maxCardTitleWidth = 60

// tileLabelWidth matches the inner width of a participant tile.
const tileLabelWidth = 20

// View renders the active screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	var body string
	switch m.view {
	case viewBrowse:
		body = m.viewBrowse()
	case viewSession:
		body = m.viewSession()
	case viewProfile:
		body = m.viewProfile()
	case viewCreate:
		body = m.viewCreate()
	}

	return body
}

func (m Model) viewBrowse() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("HotTake — live debates"))
	b.WriteString("\n")

	user := m.app.CurrentUser()
	if user.Name != "" {
		b.WriteString(m.styles.Subtitle.Render("Signed in as " + user.Label()))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(m.styles.Muted.Render("Refreshing debates..."))
		b.WriteString("\n\n")
	}
	if m.errorMessage != "" {
		b.WriteString(m.styles.ErrorText.Render(m.errorMessage))
		b.WriteString("\n\n")
	}
	if m.statusMessage != "" {
		b.WriteString(m.styles.Success.Render(m.statusMessage))
		b.WriteString("\n\n")
	}

	debates := m.debates()
	if len(debates) == 0 && !m.loading {
		b.WriteString(m.styles.Muted.Render("No debates yet. Press c to start one."))
		b.WriteString("\n")
	}

	for i, d := range debates {
		title := m.styles.CardTitle.Render(util.TruncateANSI(d.Title, maxCardTitleWidth))
		meta := m.styles.CardMeta.Render(
			fmt.Sprintf("%d participating", d.ParticipantCount()))
		card := title + "\n" + meta
		if i == m.cursor {
			b.WriteString(m.styles.CardSelected.Render(card))
		} else {
			b.WriteString(m.styles.Card.Render(card))
		}
		b.WriteString("\n")
	}

	if m.ctrl.ModalOpen() {
		return m.overlayConfirm(b.String())
	}

	b.WriteString(m.helpBar(
		"↑/↓", "navigate",
		"enter", "join",
		"c", "create",
		"p", "profile",
		"r", "refresh",
		"q", "quit",
	))
	return b.String()
}

// overlayConfirm renders the join confirmation prompt over the listing.
func (m Model) overlayConfirm(background string) string {
	sel, ok := m.ctrl.Selected()
	if !ok {
		return background
	}

	prompt := m.styles.ModalTitle.Render(sel.Title) + "\n" +
		m.styles.CardMeta.Render(fmt.Sprintf("%d participating", sel.ParticipantCount())) + "\n\n" +
		"Join this debate?\n\n" +
		m.helpBar("y/enter", "join", "n/esc", "cancel")

	modal := m.styles.Modal.Render(prompt)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}
	return modal
}

func (m Model) viewSession() string {
	var b strings.Builder

	switch m.ctrl.CurrentState() {
	case session.StateJoining:
		b.WriteString(m.styles.Header.Render("Joining debate..."))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Loading..."))
		return b.String()

	case session.StateErrored:
		msg, _ := m.ctrl.ErrorMessage()
		b.WriteString(m.styles.Header.Render("HotTake"))
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorText.Render(msg))
		b.WriteString("\n")
		b.WriteString(m.helpBar("esc", "back to debates"))
		return b.String()
	}

	debate := m.ctrl.Debate()
	b.WriteString(m.styles.Header.Render(debate.Title))
	b.WriteString("\n")

	// Fullscreen overlay swallows the rest of the screen.
	if focused, ok := m.ctrl.Focused(); ok {
		tile := m.styles.TileFocused.Render(m.participantLabel(focused))
		b.WriteString(tile)
		b.WriteString("\n")
		b.WriteString(m.helpBar("esc", "close fullscreen"))
		return b.String()
	}

	roster := m.ctrl.Roster()
	if len(roster) == 0 {
		b.WriteString(m.styles.Muted.Render("Nobody else is here yet."))
		b.WriteString("\n")
	}
	var tiles []string
	for i, p := range roster {
		style := m.styles.Tile
		if i == m.rosterCursor {
			style = m.styles.TileFocused
		}
		tiles = append(tiles, style.Render(util.TruncateANSI(m.participantLabel(p), tileLabelWidth)))
	}
	if len(tiles) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
		b.WriteString("\n")
	}

	controls := m.ctrl.Controls()
	var status []string
	if controls.IsMuted {
		status = append(status, m.styles.WarningText.Render("muted"))
	} else {
		status = append(status, m.styles.Success.Render("mic on"))
	}
	if controls.IsVideoOn {
		status = append(status, m.styles.Success.Render("video on"))
	} else {
		status = append(status, m.styles.WarningText.Render("video off"))
	}
	b.WriteString(strings.Join(status, m.styles.Muted.Render(" · ")))
	b.WriteString("\n")

	b.WriteString(m.helpBar(
		"m", "mute",
		"v", "video",
		"f", "fullscreen",
		"esc", "leave",
	))
	return b.String()
}

// participantLabel honors the tui.show_participant_ages setting.
func (m Model) participantLabel(p directory.Participant) string {
	if m.hideParticipantAges {
		stripped := p
		stripped.Age = nil
		return stripped.Label()
	}
	return p.Label()
}

func (m Model) viewProfile() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Your profile"))
	b.WriteString("\n")

	if m.errorMessage != "" {
		b.WriteString(m.styles.ErrorText.Render(m.errorMessage))
		b.WriteString("\n\n")
	}

	b.WriteString(m.formField("Name", m.nameInput.View(), m.formFocus == 0))
	b.WriteString(m.formField("Age", m.ageInput.View(), m.formFocus == 1))

	gender := string(genderOptions[m.genderIndex])
	if gender == "" {
		gender = "prefer not to say"
	}
	b.WriteString(m.formField("Gender", "← "+gender+" →", m.formFocus == 2))

	b.WriteString("\n")
	b.WriteString(m.helpBar(
		"tab", "next field",
		"enter", "save",
		"esc", "cancel",
	))
	return b.String()
}

func (m Model) viewCreate() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Start a debate"))
	b.WriteString("\n")

	if m.errorMessage != "" {
		b.WriteString(m.styles.ErrorText.Render(m.errorMessage))
		b.WriteString("\n\n")
	}

	b.WriteString(m.formField("Title", m.titleInput.View(), true))
	b.WriteString("\n")
	b.WriteString(m.helpBar("enter", "create", "esc", "cancel"))
	return b.String()
}

func (m Model) formField(label, input string, active bool) string {
	style := m.styles.FormLabel
	if active {
		style = m.styles.FormActive
	}
	return style.Render(label) + "\n" + input + "\n\n"
}

// helpBar renders alternating key/action pairs.
func (m Model) helpBar(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts,
			m.styles.HelpKey.Render(pairs[i])+" "+m.styles.Muted.Render(pairs[i+1]))
	}
	return m.styles.HelpBar.Render(strings.Join(parts, "  "))
}
