package profile

import (
	"context"
	"sync"

	"github.com/naveenspark/qiitaprofile/internal/observable"
	"github.com/naveenspark/qiitaprofile/pkg/domain"
)

// DefaultUserID is the profile shown when no other id is configured.
const DefaultUserID = "kaleidot725"

// Source produces one-shot profile streams. *Repository satisfies it.
type Source interface {
	GetProfile(ctx context.Context, id string) <-chan domain.UserProfile
}

// ViewModel holds the fetched profile as an observable value. The fetch
// starts once, when the ViewModel is constructed.
type ViewModel struct {
	userID  string
	profile *observable.Value[domain.UserProfile]
	cancel  context.CancelFunc
	done    chan struct{}

	closeOnce sync.Once
}

// ViewModelOption configures a ViewModel.
type ViewModelOption func(*viewModelConfig)

type viewModelConfig struct {
	userID string
	ctx    context.Context
}

// WithUserID overrides DefaultUserID. Empty ids are ignored.
func WithUserID(id string) ViewModelOption {
	return func(c *viewModelConfig) {
		if id != "" {
			c.userID = id
		}
	}
}

// WithContext sets the parent context of the fetch.
func WithContext(ctx context.Context) ViewModelOption {
	return func(c *viewModelConfig) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// NewViewModel calls src.GetProfile exactly once and republishes its
// single value through Profile.
func NewViewModel(src Source, opts ...ViewModelOption) *ViewModel {
	cfg := viewModelConfig{userID: DefaultUserID, ctx: context.Background()}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(cfg.ctx)
	vm := &ViewModel{
		userID:  cfg.userID,
		profile: observable.New[domain.UserProfile](),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	ch := src.GetProfile(ctx, vm.userID)
	go func() {
		defer close(vm.done)
		observable.Bind(ctx, vm.profile, ch)
	}()
	return vm
}

// UserID returns the id being fetched.
func (vm *ViewModel) UserID() string {
	return vm.userID
}

// Profile returns the read-only observable profile. It is unset until the
// fetch resolves.
func (vm *ViewModel) Profile() observable.Readable[domain.UserProfile] {
	return vm.profile
}

// Done is closed once the fetch result has been published or dropped.
func (vm *ViewModel) Done() <-chan struct{} {
	return vm.done
}

// Close cancels the in-flight fetch. A value that arrives afterwards is
// dropped and never reaches observers.
func (vm *ViewModel) Close() {
	vm.closeOnce.Do(vm.cancel)
}
