package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/unideck/unideck/internal/domain/course"
)

func listingPage() course.Page {
	return course.Page{
		Courses: []course.Course{
			{ID: 1, Title: "Calculus I", Category: "maths", Rating: 4.5, Price: price(49.9)},
			{ID: 2, Title: "Thermodynamics", Category: "physics", Rating: 3.9},
		},
		Total: 2,
	}
}

func searchPage() course.Page {
	return course.Page{
		Courses: []course.Course{
			{ID: 9, Title: "Linear Algebra", Category: "maths", Rating: 4.8},
		},
		Total: 1,
	}
}

func TestCatalogStateFetch(t *testing.T) {
	api := &fakeAPI{listPage: listingPage()}
	cache := &fakeCache{}
	c := NewCatalogState(api, cache, testLogger(), 10)

	if err := c.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	snap := c.Snapshot()
	if snap.Loading {
		t.Fatal("loading should be cleared after completion")
	}
	if len(snap.Courses) != 2 || snap.Total != 2 {
		t.Fatalf("courses = %d total = %d, want 2/2", len(snap.Courses), snap.Total)
	}
	if cache.replaces != 1 {
		t.Fatalf("cache replaces = %d, want 1", cache.replaces)
	}
}

func TestCatalogStateFetchError(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("failed to fetch courses")}
	c := NewCatalogState(api, nil, testLogger(), 10)

	if err := c.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch() should fail")
	}
	snap := c.Snapshot()
	if snap.Loading {
		t.Fatal("loading should be cleared after a failed fetch")
	}
	if snap.Err != "failed to fetch courses" {
		t.Fatalf("err = %q", snap.Err)
	}
}

func TestCatalogStateSearchRules(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantList    int
		wantSearch  int
		wantCourses int
	}{
		{"empty query refetches", "", 1, 0, 2},
		{"one char stays local", "a", 0, 0, 0},
		{"two chars stays local", "al", 0, 0, 0},
		{"two multibyte chars stays local", "数学", 0, 0, 0},
		{"three chars searches", "alg", 0, 1, 1},
		{"three multibyte chars searches", "微積分", 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{listPage: listingPage(), searchPage: searchPage()}
			c := NewCatalogState(api, nil, testLogger(), 10)

			if err := c.Search(context.Background(), tt.query); err != nil {
				t.Fatalf("Search(%q) error = %v", tt.query, err)
			}
			list, search, _, _ := api.calls()
			if list != tt.wantList || search != tt.wantSearch {
				t.Fatalf("calls list=%d search=%d, want %d/%d", list, search, tt.wantList, tt.wantSearch)
			}
			snap := c.Snapshot()
			if snap.SearchQuery != tt.query {
				t.Fatalf("query = %q, want %q", snap.SearchQuery, tt.query)
			}
			if len(snap.Courses) != tt.wantCourses {
				t.Fatalf("courses = %d, want %d", len(snap.Courses), tt.wantCourses)
			}
		})
	}
}

func TestCatalogStateSearchReplacesFetchedListing(t *testing.T) {
	api := &fakeAPI{listPage: listingPage(), searchPage: searchPage()}
	c := NewCatalogState(api, nil, testLogger(), 10)

	if err := c.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if err := c.Search(context.Background(), "algebra"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	snap := c.Snapshot()
	if len(snap.Courses) != 1 || snap.Courses[0].ID != 9 {
		t.Fatalf("courses = %+v, want only the search result", snap.Courses)
	}
	if snap.Loading || snap.Err != "" {
		t.Fatalf("loading = %v err = %q, want settled clean state", snap.Loading, snap.Err)
	}
}

func TestCatalogStateStaleFetchDoesNotOverwriteSearch(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeAPI{listPage: listingPage(), searchPage: searchPage(), listGate: gate}
	c := NewCatalogState(api, nil, testLogger(), 10)

	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(context.Background())
	}()

	// Wait for the fetch to be in flight, then let a search complete first.
	for {
		if list, _, _, _ := api.calls(); list == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if err := c.Search(context.Background(), "algebra"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	snap := c.Snapshot()
	if len(snap.Courses) != 1 || snap.Courses[0].ID != 9 {
		t.Fatalf("stale fetch overwrote search results: %+v", snap.Courses)
	}
	if snap.Loading {
		t.Fatal("loading should be cleared")
	}
}

func TestCatalogStateFetchDetails(t *testing.T) {
	detail := &course.Detail{
		Course: course.Course{ID: 7, Title: "Databases", Image: "db.png"},
		Images: []string{"db.png"},
		Stock:  12,
	}
	api := &fakeAPI{detail: detail}
	c := NewCatalogState(api, nil, testLogger(), 10)

	if err := c.FetchDetails(context.Background(), 7); err != nil {
		t.Fatalf("FetchDetails() error = %v", err)
	}
	snap := c.Snapshot()
	if snap.CurrentCourse == nil || snap.CurrentCourse.ID != 7 {
		t.Fatalf("current course = %+v, want id 7", snap.CurrentCourse)
	}

	c.ClearCurrentCourse()
	if c.Snapshot().CurrentCourse != nil {
		t.Fatal("ClearCurrentCourse should drop the selection")
	}
}

func TestCatalogStateFetchDetailsError(t *testing.T) {
	api := &fakeAPI{detailErr: errors.New("failed to fetch course details")}
	c := NewCatalogState(api, nil, testLogger(), 10)

	if err := c.FetchDetails(context.Background(), 404); err == nil {
		t.Fatal("FetchDetails() should fail")
	}
	snap := c.Snapshot()
	if snap.Err != "failed to fetch course details" {
		t.Fatalf("err = %q", snap.Err)
	}
	if snap.CurrentCourse != nil {
		t.Fatal("failed detail fetch must not set a course")
	}
}

func TestCatalogStateFetchOffline(t *testing.T) {
	api := &fakeAPI{}
	cache := &fakeCache{page: listingPage()}
	c := NewCatalogState(api, cache, testLogger(), 10)

	if err := c.FetchOffline(context.Background()); err != nil {
		t.Fatalf("FetchOffline() error = %v", err)
	}
	snap := c.Snapshot()
	if len(snap.Courses) != 2 || snap.Total != 2 {
		t.Fatalf("courses = %d total = %d, want 2/2", len(snap.Courses), snap.Total)
	}
	if list, _, _, _ := api.calls(); list != 0 {
		t.Fatalf("offline fetch must not call the API")
	}
}

func TestCatalogStateFetchOfflineWithoutCache(t *testing.T) {
	c := NewCatalogState(&fakeAPI{}, nil, testLogger(), 10)
	if err := c.FetchOffline(context.Background()); !errors.Is(err, ErrNoCache) {
		t.Fatalf("error = %v, want ErrNoCache", err)
	}
}

func TestCatalogStateSetSearchQuery(t *testing.T) {
	api := &fakeAPI{}
	c := NewCatalogState(api, nil, testLogger(), 10)

	c.SetSearchQuery("phys")
	if got := c.Snapshot().SearchQuery; got != "phys" {
		t.Fatalf("query = %q, want %q", got, "phys")
	}
	if list, search, _, _ := api.calls(); list != 0 || search != 0 {
		t.Fatal("SetSearchQuery must not trigger any fetch")
	}
}
