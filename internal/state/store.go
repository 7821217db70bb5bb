package state

import (
	"errors"
	"log/slog"
)

// ErrNoCache is returned by offline operations when no catalog cache
// was configured.
var ErrNoCache = errors.New("no catalog cache configured")

// ThemeStore persists the dark-mode preference.
type ThemeStore interface {
	LoadTheme() bool
	SaveTheme(dark bool) error
}

// PersistentStore is the full persistence surface the store composes
// its slices over.
type PersistentStore interface {
	SessionStore
	FavouritesStore
	ThemeStore
}

// API is the remote surface the store composes its slices over.
type API interface {
	AuthAPI
	CatalogAPI
}

// Store composes the application state slices over shared persistence
// and remote dependencies.
type Store struct {
	Auth       *AuthState
	Catalog    *CatalogState
	Favourites *FavouritesState

	store  PersistentStore
	logger *slog.Logger
}

// New wires the slices together. cache may be nil to disable the local
// catalog mirror; pageLimit <= 0 falls back to DefaultPageLimit.
func New(api API, store PersistentStore, cache CatalogCache, logger *slog.Logger, pageLimit int) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		Auth:       NewAuthState(api, store, logger),
		Catalog:    NewCatalogState(api, cache, logger, pageLimit),
		Favourites: NewFavouritesState(store, logger),
		store:      store,
		logger:     logger,
	}
}

// Theme reports whether dark mode is persisted as enabled.
func (s *Store) Theme() bool {
	return s.store.LoadTheme()
}

// SetTheme persists the dark-mode preference.
func (s *Store) SetTheme(dark bool) {
	if err := s.store.SaveTheme(dark); err != nil {
		s.logger.Warn("failed to persist theme preference", "error", err)
	}
}

// ToggleTheme flips the persisted preference and returns the new value.
func (s *Store) ToggleTheme() bool {
	dark := !s.store.LoadTheme()
	s.SetTheme(dark)
	return dark
}
