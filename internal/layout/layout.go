// Package layout holds the small amount of UI state the page shell needs:
// the colour theme and whether the mobile menu is open. State is a value
// derived per request and passed down explicitly; nothing is shared across
// requests.
package layout

import (
	"fmt"
	"net/http"
	"time"
)

// Theme is the colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeCookie remembers the visitor's theme choice.
const ThemeCookie = "ms_theme"

// State is the layout state for one page render.
type State struct {
	Theme    Theme `json:"theme"`
	MenuOpen bool  `json:"menuOpen"`
}

// Default is the state of a first visit.
func Default() State {
	return State{Theme: ThemeLight}
}

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	}
	return "", false
}

// ToggleMenu flips the mobile menu.
func (s State) ToggleMenu() State {
	s.MenuOpen = !s.MenuOpen
	return s
}

// SetMenuOpen opens or closes the mobile menu.
func (s State) SetMenuOpen(open bool) State {
	s.MenuOpen = open
	return s
}

// SetTheme switches the theme. Unknown themes are rejected.
func (s State) SetTheme(name string) (State, error) {
	t, ok := ParseTheme(name)
	if !ok {
		return s, fmt.Errorf("layout: unknown theme %q", name)
	}
	s.Theme = t
	return s, nil
}

// FromRequest derives the state from the theme cookie and the "menu" query
// parameter ("open" opens it).
func FromRequest(r *http.Request) State {
	s := Default()
	if c, err := r.Cookie(ThemeCookie); err == nil {
		if t, ok := ParseTheme(c.Value); ok {
			s.Theme = t
		}
	}
	return s.SetMenuOpen(r.URL.Query().Get("menu") == "open")
}

// WriteCookie persists the theme for a year.
func WriteCookie(w http.ResponseWriter, s State) {
	http.SetCookie(w, &http.Cookie{
		Name:     ThemeCookie,
		Value:    string(s.Theme),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}
