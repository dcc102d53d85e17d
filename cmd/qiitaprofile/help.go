package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#55c500")).
		Bold(true).
		Render("Q I I T A   P R O F I L E")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("One Qiita user, fetched once, shown in your terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"qiitaprofile", "Show the configured profile (interactive TUI)"},
		{"qiitaprofile show [id]", "Print a profile once (--json for JSON)"},
		{"qiitaprofile open [id]", "Open a profile page in the browser"},
		{"qiitaprofile --version", "Show version"},
		{"qiitaprofile help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n  Commands:\n", title, quote)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-24s", c.cmd)), descStyle.Render(c.desc))
	}

	envStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	fmt.Printf("\n  Environment:\n")
	for _, e := range []struct{ name, desc string }{
		{"QIITAPROFILE_CONFIG", "config file (default ~/.qiitaprofile/config.yaml)"},
		{"QIITA_USER_ID", "user to show (default kaleidot725)"},
		{"QIITA_BASE_URL", "API base URL (default https://qiita.com)"},
		{"QIITA_TIMEOUT", "request timeout, e.g. 10s"},
		{"QIITAPROFILE_LOG_LEVEL", "debug, info, warn or error"},
		{"QIITAPROFILE_LOG_FORMAT", "text or json"},
		{"QIITAPROFILE_LOG_FILE", "TUI log file (default ~/.qiitaprofile/debug.log)"},
	} {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-24s", e.name)), envStyle.Render(e.desc))
	}
	url := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("https://qiita.com")
	fmt.Printf("\n  %s\n\n", url)
}
