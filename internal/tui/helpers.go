package tui

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/naveenspark/qiitaprofile/pkg/domain"
)

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// cleanText collapses newlines and runs of whitespace so a profile
// description wraps as one paragraph.
func cleanText(raw string) string {
	s := strings.ReplaceAll(raw, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.Join(strings.Fields(s), " ")
}

// formatCount renders large counts compactly: 999, 1.2k, 12k.
func formatCount(n int) string {
	switch {
	case n < 1000:
		return strconv.Itoa(n)
	case n < 10000:
		s := strconv.FormatFloat(float64(n)/1000, 'f', 1, 64)
		return strings.TrimSuffix(s, ".0") + "k"
	default:
		return strconv.Itoa(n/1000) + "k"
	}
}

// link is a selectable external URL on the profile card.
type link struct {
	label string
	url   string
}

// profileLinks lists the external pages a profile points to, Qiita first.
// Entries with no value are skipped.
func profileLinks(p domain.UserProfile) []link {
	var links []link
	if u := p.ProfileURL(); u != "" {
		links = append(links, link{"Qiita", u})
	}
	if p.GitHubLoginName != "" {
		links = append(links, link{"GitHub", "https://github.com/" + url.PathEscape(p.GitHubLoginName)})
	}
	if p.TwitterScreenName != "" {
		links = append(links, link{"X", "https://x.com/" + url.PathEscape(p.TwitterScreenName)})
	}
	if p.FacebookID != "" {
		links = append(links, link{"Facebook", "https://www.facebook.com/" + url.PathEscape(p.FacebookID)})
	}
	if p.LinkedInID != "" {
		links = append(links, link{"LinkedIn", "https://www.linkedin.com/in/" + url.PathEscape(p.LinkedInID)})
	}
	if p.WebsiteURL != "" {
		links = append(links, link{"Website", p.WebsiteURL})
	}
	return links
}
