package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/qiitaprofile/internal/browser"
	"github.com/naveenspark/qiitaprofile/internal/observable"
	"github.com/naveenspark/qiitaprofile/pkg/domain"
)

// ProfileSource is what the screen observes. *profile.ViewModel satisfies it.
type ProfileSource interface {
	UserID() string
	Profile() observable.Readable[domain.UserProfile]
}

// profileLoadedMsg carries a value published by the view model.
type profileLoadedMsg struct {
	profile domain.UserProfile
}

// actionResultMsg reports the outcome of an open or copy action.
type actionResultMsg struct {
	action string
	target string
	err    error
}

// App is the root Bubbletea model.
type App struct {
	userID    string
	version   string
	updates   chan domain.UserProfile
	unobserve func()

	profile  *domain.UserProfile
	cursor   int
	helpOpen bool
	status   string
	statusOK bool
	width    int
	height   int
	frame    int // logo shimmer animation frame

	openURL  func(string) error
	copyText func(string) error
}

// NewApp creates the TUI and attaches it as an observer of src. Call Close
// when the program exits to detach.
func NewApp(src ProfileSource, version string) App {
	updates := make(chan domain.UserProfile, 1)
	unobserve := src.Profile().Observe(func(p domain.UserProfile) {
		// Keep only the latest value; never block the publisher.
		select {
		case updates <- p:
		default:
			select {
			case <-updates:
			default:
			}
			updates <- p
		}
	})
	return App{
		userID:    src.UserID(),
		version:   version,
		updates:   updates,
		unobserve: unobserve,
		openURL:   browser.Open,
		copyText:  clipboard.WriteAll,
	}
}

// Close detaches the App from its profile source.
func (a App) Close() {
	if a.unobserve != nil {
		a.unobserve()
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), waitForProfile(a.updates))
}

// waitForProfile blocks until the view model publishes.
func waitForProfile(ch <-chan domain.UserProfile) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return profileLoadedMsg{profile: p}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case profileLoadedMsg:
		p := msg.profile
		a.profile = &p
		if a.cursor >= len(profileLinks(p)) {
			a.cursor = 0
		}
		return a, waitForProfile(a.updates)

	case actionResultMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
			a.statusOK = false
		} else {
			a.status = msg.action + " " + msg.target
			a.statusOK = true
		}
		return a, nil

	case tea.KeyMsg:
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q", "ctrl+c":
				return a, tea.Quit
			}
			return a, nil
		}

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return a, tea.Quit
		case "h", "?":
			a.helpOpen = true
			return a, nil
		case "j", "down":
			if n := len(a.links()); a.cursor < n-1 {
				a.cursor++
			}
			return a, nil
		case "k", "up":
			if a.cursor > 0 {
				a.cursor--
			}
			return a, nil
		case "enter":
			if l, ok := a.selectedLink(); ok {
				return a, a.open(l.url)
			}
			return a, nil
		case "o":
			if a.profile != nil {
				if u := a.profile.ProfileURL(); u != "" {
					return a, a.open(u)
				}
			}
			return a, nil
		case "c":
			if l, ok := a.selectedLink(); ok {
				copyText := a.copyText
				target := l.url
				return a, func() tea.Msg {
					return actionResultMsg{action: "copied", target: target, err: copyText(target)}
				}
			}
			return a, nil
		}
	}
	return a, nil
}

func (a App) open(u string) tea.Cmd {
	openURL := a.openURL
	return func() tea.Msg {
		return actionResultMsg{action: "opened", target: u, err: openURL(u)}
	}
}

func (a App) links() []link {
	if a.profile == nil {
		return nil
	}
	return profileLinks(*a.profile)
}

func (a App) selectedLink() (link, bool) {
	links := a.links()
	if a.cursor < 0 || a.cursor >= len(links) {
		return link{}, false
	}
	return links[a.cursor], true
}

func (a App) View() string {
	logo := renderShimmerLogo("QIITA", a.frame)
	logoPad := max((a.width-lipgloss.Width(logo))/2, 0)
	header := strings.Repeat(" ", logoPad) + logo

	sub := metaStyle.Render("@" + a.userID)
	if a.version != "" {
		sub += metaStyle.Render(" . " + a.version)
	}
	subPad := max((a.width-lipgloss.Width(sub))/2, 0)
	header += "\n" + strings.Repeat(" ", subPad) + sub

	var body, help string
	switch {
	case a.helpOpen:
		body = helpView()
		help = " " + helpEntry("esc", "close") + "  " + helpEntry("q", "quit")
	case a.profile == nil:
		body = "\n " + dimStyle.Render("loading...")
		help = " " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case a.profile.IsEmpty():
		body = "\n " + dimStyle.Render("no profile for @"+a.userID) +
			"\n " + metaStyle.Render("the fetch failed or the user does not exist; see the log file for details")
		help = " " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	default:
		body = a.renderCard(*a.profile)
		help = " " + helpEntry("j/k", "links") + "  " + helpEntry("enter", "open") + "  " +
			helpEntry("o", "qiita") + "  " + helpEntry("c", "copy") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	}

	var statusLine string
	if a.status != "" {
		if a.statusOK {
			statusLine = " " + accentStyle.Render(a.status)
		} else {
			statusLine = " " + rejectStyle.Render(a.status)
		}
	}

	// Chrome budget: header(2) + status(1) + help(1) = 4 lines + body
	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, body, statusLine, help)
}

func (a App) renderCard(p domain.UserProfile) string {
	cardWidth := min(60, a.width-4)
	if cardWidth < 30 {
		cardWidth = 30
	}
	inner := cardWidth - 4 // padding
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(surfaceColor).
		Padding(1, 2).
		Width(cardWidth)

	var sb strings.Builder

	// Name + team badge
	sb.WriteString(selectedStyle.Render(truncStr(p.DisplayName(), inner)))
	if p.TeamOnly {
		sb.WriteString("  " + teamBadgeStyle.Render("[team only]"))
	}
	sb.WriteString("\n")

	// @id · organization · location
	meta := []string{"@" + p.ID}
	if p.Organization != "" {
		meta = append(meta, p.Organization)
	}
	if p.Location != "" {
		meta = append(meta, p.Location)
	}
	sb.WriteString(metaStyle.Render(truncStr(strings.Join(meta, " · "), inner)) + "\n")

	if desc := cleanText(p.Description); desc != "" {
		sb.WriteString("\n" + normalStyle.Width(inner).Render(desc) + "\n")
	}

	// Stats
	sb.WriteString("\n" + metaStyle.Render("---") + "\n")
	sb.WriteString(countStyle.Render(formatCount(p.ItemsCount)) + dimStyle.Render(" items  ") +
		countStyle.Render(formatCount(p.FollowersCount)) + dimStyle.Render(" followers  ") +
		countStyle.Render(formatCount(p.FolloweesCount)) + dimStyle.Render(" following") + "\n")
	sb.WriteString(metaStyle.Render("---") + "\n")

	if links := profileLinks(p); len(links) > 0 {
		sb.WriteString("\n" + sectionHeaderStyle.Render("── LINKS ──") + "\n")
		for i, l := range links {
			label := fmt.Sprintf("%-9s", l.label)
			target := truncStr(l.url, max(inner-13, 8))
			if i == a.cursor {
				sb.WriteString(linkSelectedStyle.Render("> "+label) + " " + normalStyle.Render(target) + "\n")
			} else {
				sb.WriteString("  " + dimStyle.Render(label) + " " + metaStyle.Render(target) + "\n")
			}
		}
	}

	if p.ProfileImageURL != "" {
		sb.WriteString("\n" + metaStyle.Render("avatar "+truncStr(p.ProfileImageURL, max(inner-7, 8))))
	}
	if p.PermanentID != 0 {
		sb.WriteString("\n" + metaStyle.Render(fmt.Sprintf("permanent id %d", p.PermanentID)))
	}

	return "\n" + border.Render(strings.TrimRight(sb.String(), "\n"))
}
