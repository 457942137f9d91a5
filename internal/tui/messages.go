package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hottake/hottake/internal/directory"
	"github.com/hottake/hottake/internal/profile"
	"github.com/hottake/hottake/internal/session"
)

// debatesLoadedMsg carries the result of a directory refresh.
type debatesLoadedMsg struct {
	debates []directory.Debate
	err     error
}

// debateLoadedMsg carries the result of a session fetch. The token ties it
// to the fetch that issued it; the controller drops superseded results.
type debateLoadedMsg struct {
	token  uint64
	id     string
	debate directory.Debate
	err    error
}

// debateCreatedMsg carries the result of creating a debate.
type debateCreatedMsg struct {
	debate directory.Debate
	err    error
}

// debateRemovedMsg carries the result of deleting a debate.
type debateRemovedMsg struct {
	id  string
	ok  bool
	err error
}

// profileSavedMsg carries the result of a profile update.
type profileSavedMsg struct {
	saved profile.Profile
	err   error
}

// Commands

// loadDebates refreshes the directory listing.
func loadDebates(client *directory.Client) tea.Cmd {
	return func() tea.Msg {
		debates, err := client.List(context.Background())
		return debatesLoadedMsg{debates: debates, err: err}
	}
}

// loadDebate starts a session fetch. The token is issued synchronously so
// fetch order matches the order the user navigated in, even though the
// network calls complete in any order.
func loadDebate(ctrl *session.Controller, client *directory.Client, id string) tea.Cmd {
	token := ctrl.BeginFetch(id)
	return func() tea.Msg {
		debate, err := client.Get(context.Background(), id)
		return debateLoadedMsg{token: token, id: id, debate: debate, err: err}
	}
}

// createDebate submits a new debate draft.
func createDebate(client *directory.Client, draft directory.Draft) tea.Cmd {
	return func() tea.Msg {
		created, err := client.Create(context.Background(), draft)
		return debateCreatedMsg{debate: created, err: err}
	}
}

// removeDebate deletes a debate by id.
func removeDebate(client *directory.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ok, err := client.Remove(context.Background(), id)
		return debateRemovedMsg{id: id, ok: ok, err: err}
	}
}

// saveProfile applies a patch to the stored profile.
func saveProfile(store *profile.Store, patch profile.Patch) tea.Cmd {
	return func() tea.Msg {
		saved, err := store.Update(patch)
		return profileSavedMsg{saved: saved, err: err}
	}
}
