package state

import (
	"log/slog"
	"sync"

	"github.com/unideck/unideck/internal/domain/course"
)

// FavouritesStore persists the favourites list between runs.
type FavouritesStore interface {
	LoadFavourites() []course.Course
	SaveFavourites(favourites []course.Course) error
}

// FavouritesState tracks the user's saved courses. Every mutation is
// written through to the store; write failures are logged and swallowed
// so the in-memory list stays authoritative for the run.
type FavouritesState struct {
	mu     sync.Mutex
	store  FavouritesStore
	logger *slog.Logger

	favourites []course.Course
}

// NewFavouritesState creates an empty favourites slice.
func NewFavouritesState(store FavouritesStore, logger *slog.Logger) *FavouritesState {
	if logger == nil {
		logger = slog.Default()
	}
	return &FavouritesState{store: store, logger: logger}
}

// Load replaces the in-memory list with the persisted one.
func (f *FavouritesState) Load() {
	favourites := f.store.LoadFavourites()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.favourites = favourites
}

// Snapshot returns a copy of the favourites list.
func (f *FavouritesState) Snapshot() []course.Course {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]course.Course(nil), f.favourites...)
}

// IsFavourite reports whether the course id is in the list.
func (f *FavouritesState) IsFavourite(id int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.indexLocked(id) >= 0
}

// Toggle adds the course when absent and removes it when present,
// returning true when the course ends up favourited.
func (f *FavouritesState) Toggle(crs course.Course) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	added := false
	if i := f.indexLocked(crs.ID); i >= 0 {
		f.favourites = append(f.favourites[:i], f.favourites[i+1:]...)
	} else {
		f.favourites = append(f.favourites, crs)
		added = true
	}
	f.persistLocked()
	return added
}

// Clear empties the list.
func (f *FavouritesState) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.favourites = nil
	f.persistLocked()
}

func (f *FavouritesState) indexLocked(id int) int {
	for i, c := range f.favourites {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (f *FavouritesState) persistLocked() {
	if err := f.store.SaveFavourites(f.favourites); err != nil {
		f.logger.Warn("failed to persist favourites", "error", err)
	}
}
