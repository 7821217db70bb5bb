package state

import (
	"context"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/unideck/unideck/internal/domain/course"
)

// Queries shorter than this never reach the remote search endpoint.
const minSearchLength = 3

// DefaultPageLimit bounds an unfiltered catalog fetch.
const DefaultPageLimit = 100

// CatalogAPI is the remote surface the catalog slice needs.
type CatalogAPI interface {
	ListCourses(ctx context.Context, limit, skip int) (course.Page, error)
	GetCourseDetails(ctx context.Context, id int) (*course.Detail, error)
	SearchCourses(ctx context.Context, query string) (course.Page, error)
}

// CatalogCache is an optional local copy of the last full listing.
type CatalogCache interface {
	Replace(ctx context.Context, courses []course.Course, total int) error
	Load(ctx context.Context) (course.Page, error)
}

// CatalogSnapshot is a copy of the catalog slice state at one instant.
type CatalogSnapshot struct {
	Courses       []course.Course
	Total         int
	CurrentCourse *course.Detail
	SearchQuery   string
	Loading       bool
	Err           string
}

// CatalogState tracks the course listing, the selected course, and the
// search query. Listing operations and detail fetches each carry a
// generation number taken when the request is issued; a completion is
// applied only while its generation is still current, so a slow fetch
// finishing after a newer search cannot overwrite the newer result.
type CatalogState struct {
	mu     sync.Mutex
	api    CatalogAPI
	cache  CatalogCache
	logger *slog.Logger
	limit  int

	listGen   uint64
	detailGen uint64

	courses     []course.Course
	total       int
	current     *course.Detail
	searchQuery string
	loading     bool
	err         string
}

// NewCatalogState creates the catalog slice. cache may be nil, in which
// case listings are not mirrored locally and FetchOffline fails.
func NewCatalogState(api CatalogAPI, cache CatalogCache, logger *slog.Logger, pageLimit int) *CatalogState {
	if logger == nil {
		logger = slog.Default()
	}
	if pageLimit <= 0 {
		pageLimit = DefaultPageLimit
	}
	return &CatalogState{
		api:    api,
		cache:  cache,
		logger: logger,
		limit:  pageLimit,
	}
}

// Snapshot returns a copy of the current catalog state.
func (c *CatalogState) Snapshot() CatalogSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := CatalogSnapshot{
		Courses:     append([]course.Course(nil), c.courses...),
		Total:       c.total,
		SearchQuery: c.searchQuery,
		Loading:     c.loading,
		Err:         c.err,
	}
	if c.current != nil {
		d := *c.current
		snap.CurrentCourse = &d
	}
	return snap
}

// Fetch loads the unfiltered course listing and mirrors it into the
// cache when one is configured.
func (c *CatalogState) Fetch(ctx context.Context) error {
	gen := c.beginList()
	page, err := c.api.ListCourses(ctx, c.limit, 0)
	if !c.commitList(gen, page, err) {
		return nil
	}
	if err != nil {
		return err
	}
	if c.cache != nil {
		if cacheErr := c.cache.Replace(ctx, page.Courses, page.Total); cacheErr != nil {
			c.logger.Warn("failed to update catalog cache", "error", cacheErr)
		}
	}
	return nil
}

// Search records the query, then either searches remotely, falls back
// to an unfiltered fetch on an empty query, or does nothing for queries
// too short to be worth a round trip.
func (c *CatalogState) Search(ctx context.Context, query string) error {
	c.mu.Lock()
	c.searchQuery = query
	c.mu.Unlock()

	if query == "" {
		return c.Fetch(ctx)
	}
	if utf8.RuneCountInString(query) < minSearchLength {
		return nil
	}

	gen := c.beginList()
	page, err := c.api.SearchCourses(ctx, query)
	if !c.commitList(gen, page, err) {
		return nil
	}
	return err
}

// FetchDetails loads one course into CurrentCourse.
func (c *CatalogState) FetchDetails(ctx context.Context, id int) error {
	c.mu.Lock()
	c.detailGen++
	gen := c.detailGen
	c.loading = true
	c.err = ""
	c.mu.Unlock()

	detail, err := c.api.GetCourseDetails(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.detailGen {
		c.logger.Debug("dropping stale course details", "id", id)
		return nil
	}
	c.loading = false
	if err != nil {
		c.err = err.Error()
		return err
	}
	c.current = detail
	c.err = ""
	return nil
}

// FetchOffline serves the listing from the local cache.
func (c *CatalogState) FetchOffline(ctx context.Context) error {
	if c.cache == nil {
		return ErrNoCache
	}

	gen := c.beginList()
	page, err := c.cache.Load(ctx)
	if !c.commitList(gen, page, err) {
		return nil
	}
	return err
}

// SetSearchQuery records the query without triggering any fetch.
func (c *CatalogState) SetSearchQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchQuery = query
}

// ClearCurrentCourse drops the selected course.
func (c *CatalogState) ClearCurrentCourse() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

func (c *CatalogState) beginList() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listGen++
	c.loading = true
	c.err = ""
	return c.listGen
}

// commitList applies a listing completion and reports whether it was
// still current. Stale completions leave the slice untouched.
func (c *CatalogState) commitList(gen uint64, page course.Page, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.listGen {
		c.logger.Debug("dropping stale course listing")
		return false
	}
	c.loading = false
	if err != nil {
		c.err = err.Error()
		return true
	}
	c.courses = page.Courses
	c.total = page.Total
	c.err = ""
	return true
}
