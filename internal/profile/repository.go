// Package profile fetches a Qiita user profile and republishes it for
// observers, substituting the empty profile when the fetch fails.
package profile

import (
	"context"
	"log/slog"

	"github.com/naveenspark/qiitaprofile/pkg/client"
	"github.com/naveenspark/qiitaprofile/pkg/domain"
)

// Fetcher is the single network operation the repository depends on.
// *client.Client satisfies it.
type Fetcher interface {
	GetUser(ctx context.Context, id string) (*domain.UserProfile, error)
}

// Repository wraps a Fetcher with the fallback-on-failure policy.
type Repository struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewRepository creates a Repository. A nil logger discards log output.
func NewRepository(f Fetcher, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{fetcher: f, logger: logger}
}

// GetProfile starts a fetch for id on its own goroutine and returns a
// channel that receives exactly one profile and is then closed. Failures
// never reach the channel: they are logged and replaced by the empty
// profile.
func (r *Repository) GetProfile(ctx context.Context, id string) <-chan domain.UserProfile {
	out := make(chan domain.UserProfile, 1)
	go func() {
		defer close(out)
		out <- r.Fetch(ctx, id)
	}()
	return out
}

// Fetch is the synchronous form of GetProfile.
func (r *Repository) Fetch(ctx context.Context, id string) domain.UserProfile {
	u, err := r.fetcher.GetUser(ctx, id)
	if err != nil {
		r.logger.Error("profile: fetch failed, using empty profile",
			slog.String("user_id", id),
			slog.String("kind", client.Kind(err)),
			slog.String("request_id", client.RequestID(err)),
			slog.Any("error", err),
		)
		return domain.Empty()
	}
	if u == nil {
		r.logger.Error("profile: fetch returned no profile, using empty profile",
			slog.String("user_id", id),
		)
		return domain.Empty()
	}
	r.logger.Debug("profile: fetched",
		slog.String("user_id", id),
		slog.Int("items_count", u.ItemsCount),
	)
	return *u
}
