package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/qiitaprofile/internal/browser"
	"github.com/naveenspark/qiitaprofile/internal/config"
	"github.com/naveenspark/qiitaprofile/internal/profile"
	"github.com/naveenspark/qiitaprofile/internal/tui"
	"github.com/naveenspark/qiitaprofile/pkg/client"
	"github.com/naveenspark/qiitaprofile/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Println("qiitaprofile " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		switch args[0] {
		case "show":
			id, asJSON, err := parseShowArgs(args[1:], cfg.UserID)
			if err != nil {
				return err
			}
			logger := cfg.NewLogger(os.Stderr)
			return runShow(context.Background(), os.Stdout, newClient(cfg), logger, id, asJSON)
		case "open":
			id := cfg.UserID
			if len(args) > 1 {
				id = args[1]
			}
			return openProfile(id)
		default:
			return fmt.Errorf("unknown command %q (try: qiitaprofile help)", args[0])
		}
	}

	return runTUI(cfg)
}

func newClient(cfg *config.Config) *client.Client {
	return client.New(cfg.BaseURL,
		client.WithTimeout(cfg.Timeout),
		client.WithUserAgent("qiitaprofile/"+version),
	)
}

// runTUI wires config -> logger -> client -> repository -> view model -> UI.
func runTUI(cfg *config.Config) error {
	logFile, err := cfg.OpenLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close() //nolint:errcheck

	logger := cfg.NewLogger(logFile)
	logger.Info("qiitaprofile: starting", slog.String("version", version), slog.String("user_id", cfg.UserID))

	repo := profile.NewRepository(newClient(cfg), logger)
	vm := profile.NewViewModel(repo, profile.WithUserID(cfg.UserID))
	defer vm.Close()

	app := tui.NewApp(vm, version)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// parseShowArgs accepts "[id] [--json]" in any order.
func parseShowArgs(args []string, defaultID string) (id string, asJSON bool, err error) {
	id = defaultID
	seenID := false
	for _, a := range args {
		switch {
		case a == "--json":
			asJSON = true
		case strings.HasPrefix(a, "-"):
			return "", false, fmt.Errorf("show: unknown flag %q", a)
		case seenID:
			return "", false, fmt.Errorf("show: unexpected argument %q", a)
		default:
			id = a
			seenID = true
		}
	}
	return id, asJSON, nil
}

// runShow fetches one profile through the view model and prints it once.
func runShow(ctx context.Context, w io.Writer, f profile.Fetcher, logger *slog.Logger, id string, asJSON bool) error {
	vm := profile.NewViewModel(profile.NewRepository(f, logger),
		profile.WithUserID(id), profile.WithContext(ctx))
	defer vm.Close()

	select {
	case <-vm.Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	p, ok := vm.Profile().Get()
	if !ok {
		return fmt.Errorf("show: fetch for %q was cancelled", id)
	}
	if p.IsEmpty() {
		return fmt.Errorf("show: no profile for %q (details are in the log)", id)
	}
	if asJSON {
		return writeJSON(w, p)
	}
	return writeProfile(w, p)
}

func writeJSON(w io.Writer, p domain.UserProfile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("show: encode: %w", err)
	}
	return nil
}

func writeProfile(w io.Writer, p domain.UserProfile) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (@%s)\n", p.DisplayName(), p.ID)
	for _, f := range []struct{ label, value string }{
		{"organization", p.Organization},
		{"location", p.Location},
		{"description", p.Description},
		{"github", p.GitHubLoginName},
		{"twitter", p.TwitterScreenName},
		{"facebook", p.FacebookID},
		{"linkedin", p.LinkedInID},
		{"website", p.WebsiteURL},
	} {
		if f.value != "" {
			fmt.Fprintf(&b, "  %-13s %s\n", f.label, strings.Join(strings.Fields(f.value), " "))
		}
	}
	fmt.Fprintf(&b, "  %-13s %d items, %d followers, %d following\n", "stats",
		p.ItemsCount, p.FollowersCount, p.FolloweesCount)
	if p.TeamOnly {
		fmt.Fprintf(&b, "  %-13s yes\n", "team only")
	}
	fmt.Fprintf(&b, "  %-13s %s\n", "url", p.ProfileURL())
	_, err := io.WriteString(w, b.String())
	return err
}

func openProfile(id string) error {
	u := domain.UserProfile{ID: id}.ProfileURL()
	if u == "" {
		return fmt.Errorf("open: empty user id")
	}
	if err := browser.Open(u); err != nil {
		fmt.Println(u)
	}
	return nil
}
