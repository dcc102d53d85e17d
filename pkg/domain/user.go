package domain

import "net/url"

// QiitaWebURL is the public site that profile pages live under.
const QiitaWebURL = "https://qiita.com"

// UserProfile is a Qiita user as returned by GET /api/v2/users/{id}.
type UserProfile struct {
	Description       string `json:"description"`
	FacebookID        string `json:"facebook_id"`
	FolloweesCount    int    `json:"followees_count"`
	FollowersCount    int    `json:"followers_count"`
	GitHubLoginName   string `json:"github_login_name"`
	ID                string `json:"id"`
	ItemsCount        int    `json:"items_count"`
	LinkedInID        string `json:"linkedin_id"`
	Location          string `json:"location"`
	Name              string `json:"name"`
	Organization      string `json:"organization"`
	PermanentID       int    `json:"permanent_id"`
	ProfileImageURL   string `json:"profile_image_url"`
	TeamOnly          bool   `json:"team_only"`
	TwitterScreenName string `json:"twitter_screen_name"`
	WebsiteURL        string `json:"website_url"`
}

// EmptyProfile is the all-zero profile substituted when a fetch fails.
// Treat it as read-only; use Empty for a copy.
var EmptyProfile = UserProfile{}

// Empty returns a copy of EmptyProfile.
func Empty() UserProfile {
	return EmptyProfile
}

// IsEmpty reports whether p equals the empty sentinel.
func (p UserProfile) IsEmpty() bool {
	return p == EmptyProfile
}

// DisplayName returns the name, or the id when the name is blank.
func (p UserProfile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// ProfileURL returns the user's page on qiita.com, or "" without an id.
func (p UserProfile) ProfileURL() string {
	if p.ID == "" {
		return ""
	}
	return QiitaWebURL + "/" + url.PathEscape(p.ID)
}
