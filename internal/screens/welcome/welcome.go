// Package welcome is the splash and sign-in screen shown when nobody is
// signed in.
package welcome

import (
	"errors"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/upskill/internal/screen"
	"github.com/abhisek/upskill/internal/screens"
	"github.com/abhisek/upskill/internal/store"
	"github.com/abhisek/upskill/internal/ui/components"
	"github.com/abhisek/upskill/internal/ui/layout"
	"github.com/abhisek/upskill/internal/ui/theme"
	"github.com/abhisek/upskill/internal/users"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 300 * time.Millisecond
	splashDur    = 1500 * time.Millisecond
)

type tickMsg time.Time

type mode int

const (
	modeSignIn mode = iota
	modeRegister
)

// Field order per mode; the json names match validation errors.
var formFields = map[mode][]struct{ key, label, placeholder string }{
	modeSignIn: {
		{"email", "Email     ", "you@company.com"},
		{"password", "Password  ", ""},
	},
	modeRegister: {
		{"name", "Name      ", "Ada Lovelace"},
		{"email", "Email     ", "you@company.com"},
		{"password", "Password  ", "at least 8 characters"},
		{"role", "Role      ", "Backend Engineer"},
		{"department", "Department", "Platform"},
	},
}

// WelcomeScreen plays a short splash, then asks the learner to sign in or
// register.
type WelcomeScreen struct {
	deps      screens.Deps
	elapsed   time.Duration
	tickCount int

	mode   mode
	fields []components.TextInput
	focus  int
	errMsg string
	done   bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

func New(deps screens.Deps) *WelcomeScreen {
	w := &WelcomeScreen{deps: deps}
	w.setMode(modeSignIn)
	return w
}

func (w *WelcomeScreen) setMode(m mode) {
	w.mode = m
	w.focus = 0
	w.errMsg = ""
	w.fields = w.fields[:0]
	for i, f := range formFields[m] {
		ti := components.NewTextInput(f.label, f.placeholder, 120)
		if f.key == "password" {
			ti.Model.EchoMode = textinput.EchoPassword
		}
		if i != 0 {
			ti.Model.Blur()
		}
		w.fields = append(w.fields, ti)
	}
}

func (w *WelcomeScreen) splashing() bool {
	return w.elapsed < splashDur
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	toggle := "Register"
	if w.mode == modeRegister {
		toggle = "Sign in"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: toggle},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !w.splashing() {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		return w, tick()

	case tea.KeyMsg:
		// Any key skips the splash.
		if w.splashing() {
			w.elapsed = splashDur
			return w, nil
		}
		return w.handleKey(msg)
	}
	return w, nil
}

func (w *WelcomeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if w.done {
		return w, nil
	}
	switch msg.String() {
	case "ctrl+r":
		if w.mode == modeSignIn {
			w.setMode(modeRegister)
		} else {
			w.setMode(modeSignIn)
		}
		return w, nil
	case "tab", "down":
		return w, w.moveFocus(1)
	case "shift+tab", "up":
		return w, w.moveFocus(-1)
	case "enter":
		if w.focus < len(w.fields)-1 {
			return w, w.moveFocus(1)
		}
		return w, w.submit()
	}

	var cmd tea.Cmd
	w.fields[w.focus], cmd = w.fields[w.focus].Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) moveFocus(delta int) tea.Cmd {
	next := (w.focus + delta + len(w.fields)) % len(w.fields)
	w.fields[w.focus].Model.Blur()
	w.focus = next
	return w.fields[next].Model.Focus()
}

func (w *WelcomeScreen) value(key string) string {
	for i, f := range formFields[w.mode] {
		if f.key == key {
			return w.fields[i].Value()
		}
	}
	return ""
}

// submit signs in or registers. On success it emits SignedInMsg; the app
// swaps this screen for home.
func (w *WelcomeScreen) submit() tea.Cmd {
	ctx := w.deps.Ctx()
	var (
		u   *store.User
		err error
	)
	if w.mode == modeSignIn {
		u, err = w.deps.Users.Authenticate(ctx, w.value("email"), w.value("password"))
	} else {
		u, err = w.deps.Users.Register(ctx, users.NewUser{
			Name:       w.value("name"),
			Email:      w.value("email"),
			Password:   w.value("password"),
			Role:       w.value("role"),
			Department: w.value("department"),
		})
	}
	if err != nil {
		w.errMsg = describe(err)
		return nil
	}

	if w.deps.Remember != nil {
		if err := w.deps.Remember(*u); err != nil {
			w.deps.Log.Warn("save session", "error", err)
		}
	}
	w.done = true
	user := *u
	return func() tea.Msg { return screens.SignedInMsg{User: user} }
}

func describe(err error) string {
	var verr *users.ValidationError
	if errors.As(err, &verr) {
		lines := make([]string, len(verr.Fields))
		for i, f := range verr.Fields {
			lines[i] = f.Message
		}
		return strings.Join(lines, "\n")
	}
	switch {
	case errors.Is(err, users.ErrInvalidCredentials):
		return "Email or password is incorrect."
	case errors.Is(err, users.ErrEmailExists):
		return "An account with this email already exists."
	}
	return err.Error()
}

func (w *WelcomeScreen) View(width, height int) string {
	if w.splashing() {
		return w.renderSplash(width, height)
	}

	var b strings.Builder
	b.WriteString(RenderBanner(width) + "\n\n")

	heading := "Sign in"
	other := "New here? Ctrl+R to create an account."
	if w.mode == modeRegister {
		heading = "Create your account"
		other = "Have an account? Ctrl+R to sign in."
	}

	var form strings.Builder
	form.WriteString(theme.Title.Render(heading) + "\n\n")
	for i, f := range w.fields {
		line := f.View()
		if i == w.focus {
			line = theme.Selected.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		form.WriteString(line + "\n")
	}
	if w.errMsg != "" {
		form.WriteString("\n" + theme.Incorrect.Render(w.errMsg) + "\n")
	}
	form.WriteString("\n" + theme.Hint.Render(other))

	b.WriteString(theme.Card.Width(60).Render(form.String()))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (w *WelcomeScreen) renderSplash(width, height int) string {
	var sections []string
	if w.elapsed >= bannerAt {
		sections = append(sections, RenderBanner(width), "")
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Learn. Assess. Get certified.")
		sections = append(sections, tagline)

		dots := strings.Repeat("·", w.tickCount%4)
		sections = append(sections, "", theme.Hint.Render("loading"+dots))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
