// Package recipebox wires the local store, the remote facade, and the
// domain services into one client handle.
//
// Example:
//
//	box, err := recipebox.Open(recipebox.Options{
//	    Config: types.Config{
//	        Backend: types.BackendSQLite,
//	        DataDir: "/home/me/.local/share/recipebox",
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer box.Close()
package recipebox

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/platewise/recipebox/internal/api"
	"github.com/platewise/recipebox/internal/drafts"
	"github.com/platewise/recipebox/internal/favorites"
	"github.com/platewise/recipebox/internal/memstore"
	"github.com/platewise/recipebox/internal/pantry"
	"github.com/platewise/recipebox/internal/profile"
	"github.com/platewise/recipebox/internal/recipes"
	"github.com/platewise/recipebox/internal/reviews"
	"github.com/platewise/recipebox/internal/sqlite"
	"github.com/platewise/recipebox/internal/watch"
	"github.com/platewise/recipebox/pkg/types"
)

// DefaultBaseURL is the remote recipe service address used when Options
// leaves BaseURL empty.
const DefaultBaseURL = "http://localhost:3000"

// Options configures Open. The zero value of every field except Config
// is usable; Config must name a backend and, for sqlite, a data
// directory.
type Options struct {
	Config       types.Config
	BaseURL      string        // remote service address, DefaultBaseURL when empty
	Timeout      time.Duration // remote request timeout, api.DefaultTimeout when zero
	PollInterval time.Duration // observer staleness bound, watch.DefaultPollInterval when zero
	Logger       *zap.Logger   // zap.NewNop() when nil
}

// Box is an opened recipebox client. All services share one store and
// one remote client and are safe for concurrent use. Close detaches the
// backing store.
type Box struct {
	Store     *pantry.Store
	Client    *api.Client
	Recipes   *recipes.Service
	Reviews   *reviews.Repository
	Favorites *favorites.Reconciler
	Profile   *profile.Manager
	Drafts    *drafts.Keeper
	Observer  *watch.Observer

	backend types.Pantry
}

// Open attaches the configured backend and constructs the services
// around it. The caller owns the returned Box and must Close it.
func Open(opts Options) (*Box, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	var backend types.Pantry
	switch opts.Config.Backend {
	case types.BackendMemory:
		backend = memstore.NewBackend()
	default:
		backend = sqlite.NewBackend()
	}

	if err := backend.Attach(opts.Config); err != nil {
		return nil, fmt.Errorf("attaching %s backend: %w", opts.Config.Backend, err)
	}

	store := pantry.NewStore(backend, log)

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := api.NewClient(baseURL, api.WithLogger(log), api.WithTimeout(opts.Timeout))

	watchOpts := []watch.Option{watch.WithLogger(log), watch.WithPollInterval(opts.PollInterval)}
	if sb, ok := backend.(*sqlite.Backend); ok {
		watchOpts = append(watchOpts, watch.WithWatchPath(sb.Path()))
	}

	return &Box{
		Store:     store,
		Client:    client,
		Recipes:   recipes.NewService(client, store, log),
		Reviews:   reviews.NewRepository(client, store, log),
		Favorites: favorites.NewReconciler(store, log),
		Profile:   profile.NewManager(store, log),
		Drafts:    drafts.NewKeeper(store, log),
		Observer:  watch.NewObserver(store, watchOpts...),
		backend:   backend,
	}, nil
}

// Close detaches the backing store. The Box must not be used after
// Close returns.
func (b *Box) Close() error {
	return b.backend.Detach()
}
