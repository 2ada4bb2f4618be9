package tui

import (
	"errors"

	"github.com/sadopc/ekwiwalent/internal/auth"
	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/sadopc/ekwiwalent/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewOperations viewState = iota
	viewSummary
	viewReports
	viewMembers
	viewCatalog
)

var viewNames = []string{"Zdarzenia", "Podsumowanie", "Raporty", "Strażacy", "Stawki"}

// --- Messages ---

// rosterMsg carries a fresh snapshot of members and operations.
type rosterMsg struct {
	roster *brigade.Roster
	err    error
}

type sessionMsg struct {
	session *auth.Session
}

type loggedOutMsg struct{}

type operationAddedMsg struct {
	op brigade.Operation
}

type operationDeletedMsg struct {
	id string
}

type memberAddedMsg struct {
	member brigade.Member
}

type memberDeletedMsg struct {
	id      string
	name    string
	removed int64
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func loadRoster(s *store.Store) rosterMsg {
	r, err := s.LoadRoster()
	return rosterMsg{roster: r, err: err}
}

func errStatus(prefix string, err error) statusMsg {
	return statusMsg{text: prefix + ": " + errorText(err), isError: true}
}

// errorMessages are the user-facing texts of errors the user can act on.
var errorMessages = []struct {
	err  error
	text string
}{
	{brigade.ErrMemberRequired, "Wybierz strażaka"},
	{brigade.ErrMemberNotFound, "Nie znaleziono strażaka"},
	{brigade.ErrUnknownType, "Wybierz typ zdarzenia"},
	{brigade.ErrInvalidDate, "Nieprawidłowa data (RRRR-MM-DD)"},
	{brigade.ErrInvalidHours, "Czas musi być liczbą większą od zera"},
	{brigade.ErrNameRequired, "Imię i nazwisko jest wymagane"},
	{brigade.ErrRankRequired, "Stanowisko jest wymagane"},
	{auth.ErrMissingFields, "Wszystkie pola są wymagane"},
	{auth.ErrPasswordMismatch, "Hasła nie są identyczne"},
	{auth.ErrPasswordTooShort, "Hasło musi mieć co najmniej 6 znaków"},
	{auth.ErrUsernameTaken, "Nazwa użytkownika jest już zajęta"},
	{auth.ErrInvalidCredentials, "Nieprawidłowa nazwa użytkownika lub hasło"},
}

// errorText returns the Polish message for known errors and the raw text
// otherwise.
func errorText(err error) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.text
		}
	}
	return err.Error()
}

// formError adapts an error for display under a form field.
func formError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(errorText(err))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
