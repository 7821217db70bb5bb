package state

import (
	"errors"
	"testing"

	"github.com/unideck/unideck/internal/domain/course"
)

func TestFavouritesStateToggle(t *testing.T) {
	fs := &fakeStore{}
	f := NewFavouritesState(fs, testLogger())
	crs := course.Course{ID: 3, Title: "Organic Chemistry"}

	if !f.Toggle(crs) {
		t.Fatal("first toggle should add")
	}
	if !f.IsFavourite(3) {
		t.Fatal("course should be favourited")
	}
	if got := fs.LoadFavourites(); len(got) != 1 {
		t.Fatalf("persisted favourites = %d, want 1", len(got))
	}

	if f.Toggle(crs) {
		t.Fatal("second toggle should remove")
	}
	if f.IsFavourite(3) {
		t.Fatal("course should no longer be favourited")
	}
	if got := fs.LoadFavourites(); len(got) != 0 {
		t.Fatalf("persisted favourites = %d, want 0", len(got))
	}
}

func TestFavouritesStateToggleMatchesByID(t *testing.T) {
	f := NewFavouritesState(&fakeStore{}, testLogger())
	f.Toggle(course.Course{ID: 5, Title: "Statistics", Rating: 4.0})

	// Same id with different field values still removes.
	if f.Toggle(course.Course{ID: 5, Title: "Statistics II", Rating: 4.9}) {
		t.Fatal("toggle with matching id should remove")
	}
	if len(f.Snapshot()) != 0 {
		t.Fatal("list should be empty")
	}
}

func TestFavouritesStateLoad(t *testing.T) {
	fs := &fakeStore{favourites: []course.Course{
		{ID: 1, Title: "Calculus I"},
		{ID: 2, Title: "Thermodynamics"},
	}}
	f := NewFavouritesState(fs, testLogger())

	if len(f.Snapshot()) != 0 {
		t.Fatal("list should be empty before Load")
	}
	f.Load()
	got := f.Snapshot()
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("Snapshot() = %+v", got)
	}
}

func TestFavouritesStateClear(t *testing.T) {
	fs := &fakeStore{}
	f := NewFavouritesState(fs, testLogger())
	f.Toggle(course.Course{ID: 1})
	f.Toggle(course.Course{ID: 2})

	f.Clear()
	if len(f.Snapshot()) != 0 {
		t.Fatal("Clear should empty the list")
	}
	if got := fs.LoadFavourites(); len(got) != 0 {
		t.Fatalf("persisted favourites = %d, want 0", len(got))
	}
}

func TestFavouritesStateSurvivesPersistFailure(t *testing.T) {
	fs := &fakeStore{saveErr: errors.New("disk full")}
	f := NewFavouritesState(fs, testLogger())

	if !f.Toggle(course.Course{ID: 4, Title: "Astrophysics"}) {
		t.Fatal("toggle should still add in memory")
	}
	if !f.IsFavourite(4) {
		t.Fatal("in-memory list must survive a failed persist")
	}
}

func TestFavouritesStateSnapshotIsCopy(t *testing.T) {
	f := NewFavouritesState(&fakeStore{}, testLogger())
	f.Toggle(course.Course{ID: 1, Title: "Calculus I"})

	snap := f.Snapshot()
	snap[0].Title = "mutated"
	if f.Snapshot()[0].Title != "Calculus I" {
		t.Fatal("mutating a snapshot must not affect state")
	}
}
