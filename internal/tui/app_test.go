package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/qiitaprofile/internal/observable"
	"github.com/naveenspark/qiitaprofile/pkg/domain"
)

type stubSource struct {
	v *observable.Value[domain.UserProfile]
}

func (s stubSource) UserID() string { return "kaleidot725" }

func (s stubSource) Profile() observable.Readable[domain.UserProfile] { return s.v }

func newTestApp() (App, *observable.Value[domain.UserProfile]) {
	v := observable.New[domain.UserProfile]()
	a := NewApp(stubSource{v: v}, "v0.1.0")
	a.width = 80
	a.height = 40
	a.openURL = func(string) error { return nil }
	a.copyText = func(string) error { return nil }
	return a, v
}

func makeTestProfile() domain.UserProfile {
	return domain.UserProfile{
		ID:                "kaleidot725",
		Name:              "Kaito",
		Organization:      "ACME",
		Location:          "Tokyo",
		Description:       "Android\nengineer",
		FollowersCount:    10,
		FolloweesCount:    3,
		ItemsCount:        42,
		GitHubLoginName:   "kaleidot725",
		TwitterScreenName: "kaleidot725",
		PermanentID:       12345,
	}
}

// deliver publishes p and feeds the resulting message through Update.
func deliver(t *testing.T, a App, v *observable.Value[domain.UserProfile], p domain.UserProfile) App {
	t.Helper()
	v.Set(p)
	msg := waitForProfile(a.updates)()
	if _, ok := msg.(profileLoadedMsg); !ok {
		t.Fatalf("waitForProfile() = %T, want profileLoadedMsg", msg)
	}
	model, cmd := a.Update(msg)
	if cmd == nil {
		t.Error("expected profileLoadedMsg to re-arm the wait command")
	}
	return model.(App)
}

func press(a App, key string) (App, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	model, cmd := a.Update(msg)
	return model.(App), cmd
}

func TestAppLoadingBeforeProfile(t *testing.T) {
	a, _ := newTestApp()
	view := a.View()
	if !strings.Contains(view, "loading") {
		t.Errorf("expected 'loading' before the profile arrives, got:\n%s", view)
	}
	if !strings.Contains(view, "@kaleidot725") {
		t.Errorf("expected user id in header, got:\n%s", view)
	}
}

func TestAppShowsProfileCard(t *testing.T) {
	a, v := newTestApp()
	a = deliver(t, a, v, makeTestProfile())

	view := a.View()
	for _, want := range []string{"Kaito", "@kaleidot725", "ACME", "Tokyo", "Android engineer", "42 items", "10 followers", "3 following", "LINKS", "GitHub", "permanent id 12345"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in card, got:\n%s", want, view)
		}
	}
	if strings.Contains(view, "loading") {
		t.Errorf("loading still shown after profile arrived:\n%s", view)
	}
}

func TestAppEmptyProfile(t *testing.T) {
	a, v := newTestApp()
	a = deliver(t, a, v, domain.Empty())

	view := a.View()
	if !strings.Contains(view, "no profile for @kaleidot725") {
		t.Errorf("expected empty-profile notice, got:\n%s", view)
	}
	if strings.Contains(view, "LINKS") {
		t.Errorf("empty profile should not render a card:\n%s", view)
	}
}

func TestAppLateObserverSeesExistingValue(t *testing.T) {
	v := observable.New[domain.UserProfile]()
	v.Set(makeTestProfile())

	a := NewApp(stubSource{v: v}, "")
	defer a.Close()

	msg, ok := waitForProfile(a.updates)().(profileLoadedMsg)
	if !ok {
		t.Fatal("expected a profileLoadedMsg for a value set before NewApp")
	}
	if msg.profile.Name != "Kaito" {
		t.Errorf("Name = %q, want Kaito", msg.profile.Name)
	}
}

func TestAppObserverKeepsLatest(t *testing.T) {
	a, v := newTestApp()
	v.Set(domain.UserProfile{ID: "first"})
	v.Set(domain.UserProfile{ID: "second"})

	msg := waitForProfile(a.updates)().(profileLoadedMsg)
	if msg.profile.ID != "second" {
		t.Errorf("ID = %q, want second", msg.profile.ID)
	}
}

func TestAppCloseDetaches(t *testing.T) {
	a, v := newTestApp()
	if v.Observers() != 1 {
		t.Fatalf("Observers() = %d, want 1", v.Observers())
	}
	a.Close()
	if v.Observers() != 0 {
		t.Errorf("Observers() = %d after Close, want 0", v.Observers())
	}
}

func TestAppTeamOnlyBadge(t *testing.T) {
	a, v := newTestApp()
	p := makeTestProfile()
	p.TeamOnly = true
	a = deliver(t, a, v, p)

	if !strings.Contains(a.View(), "[team only]") {
		t.Errorf("expected team-only badge, got:\n%s", a.View())
	}
}

func TestAppLinkNavigation(t *testing.T) {
	a, v := newTestApp()
	a = deliver(t, a, v, makeTestProfile()) // Qiita, GitHub, X

	a, _ = press(a, "k")
	if a.cursor != 0 {
		t.Errorf("cursor = %d after k at top, want 0", a.cursor)
	}
	a, _ = press(a, "j")
	a, _ = press(a, "j")
	a, _ = press(a, "j")
	if a.cursor != 2 {
		t.Errorf("cursor = %d after 3x j, want 2 (clamped)", a.cursor)
	}
	if !strings.Contains(a.View(), "> X") {
		t.Errorf("expected X link selected, got:\n%s", a.View())
	}
}

func TestAppEnterOpensSelectedLink(t *testing.T) {
	a, v := newTestApp()
	var opened string
	a.openURL = func(u string) error {
		opened = u
		return nil
	}
	a = deliver(t, a, v, makeTestProfile())
	a, _ = press(a, "j")

	a, cmd := press(a, "enter")
	if cmd == nil {
		t.Fatal("expected open command on enter, got nil")
	}
	msg := cmd()
	if opened != "https://github.com/kaleidot725" {
		t.Errorf("opened %q, want GitHub URL", opened)
	}

	model, _ := a.Update(msg)
	a = model.(App)
	if !strings.Contains(a.View(), "opened https://github.com/kaleidot725") {
		t.Errorf("expected status line after open, got:\n%s", a.View())
	}
}

func TestAppOpenQiitaPage(t *testing.T) {
	a, v := newTestApp()
	var opened string
	a.openURL = func(u string) error {
		opened = u
		return nil
	}
	a = deliver(t, a, v, makeTestProfile())
	a, _ = press(a, "j") // selection must not matter for o

	_, cmd := press(a, "o")
	if cmd == nil {
		t.Fatal("expected open command on o, got nil")
	}
	cmd()
	if opened != "https://qiita.com/kaleidot725" {
		t.Errorf("opened %q, want Qiita profile URL", opened)
	}
}

func TestAppCopySelectedLink(t *testing.T) {
	a, v := newTestApp()
	var copied string
	a.copyText = func(s string) error {
		copied = s
		return nil
	}
	a = deliver(t, a, v, makeTestProfile())

	_, cmd := press(a, "c")
	if cmd == nil {
		t.Fatal("expected copy command on c, got nil")
	}
	msg := cmd().(actionResultMsg)
	if copied != "https://qiita.com/kaleidot725" {
		t.Errorf("copied %q, want Qiita profile URL", copied)
	}
	if msg.action != "copied" || msg.err != nil {
		t.Errorf("msg = %+v, want successful copy", msg)
	}
}

func TestAppActionErrorShown(t *testing.T) {
	a, _ := newTestApp()
	model, _ := a.Update(actionResultMsg{action: "copied", err: errors.New("no clipboard")})
	a = model.(App)
	if !strings.Contains(a.View(), "copied failed: no clipboard") {
		t.Errorf("expected error status, got:\n%s", a.View())
	}
}

func TestAppActionsIgnoredWithoutProfile(t *testing.T) {
	a, _ := newTestApp()
	for _, key := range []string{"enter", "o", "c", "j"} {
		var cmd tea.Cmd
		a, cmd = press(a, key)
		if cmd != nil {
			t.Errorf("key %q returned a command before the profile loaded", key)
		}
	}
}

func TestAppActionsIgnoredForEmptyProfile(t *testing.T) {
	a, v := newTestApp()
	a = deliver(t, a, v, domain.Empty())
	for _, key := range []string{"enter", "o", "c"} {
		var cmd tea.Cmd
		a, cmd = press(a, key)
		if cmd != nil {
			t.Errorf("key %q returned a command for the empty profile", key)
		}
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a, _ := newTestApp()
	a, _ = press(a, "h")
	if !a.helpOpen {
		t.Fatal("expected help open after h")
	}
	if !strings.Contains(a.View(), "Keys") {
		t.Errorf("expected help view, got:\n%s", a.View())
	}
	a, _ = press(a, "esc")
	if a.helpOpen {
		t.Error("expected help closed after esc")
	}
}

func TestAppQuit(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		t.Run(key, func(t *testing.T) {
			a, _ := newTestApp()
			_, cmd := press(a, key)
			if cmd == nil {
				t.Fatal("expected quit command, got nil")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
			}
		})
	}
}

func TestAppShimmerTickAdvancesFrame(t *testing.T) {
	a, _ := newTestApp()
	model, cmd := a.Update(shimmerTickMsg{})
	a = model.(App)
	if a.frame != 1 {
		t.Errorf("frame = %d, want 1", a.frame)
	}
	if cmd == nil {
		t.Error("expected next tick command")
	}
}

func TestAppWindowResize(t *testing.T) {
	a, _ := newTestApp()
	model, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 10})
	a = model.(App)
	if a.width != 120 || a.height != 10 {
		t.Errorf("size = %dx%d, want 120x10", a.width, a.height)
	}
}
