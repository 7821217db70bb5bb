// Package service maps remote product records into course-shaped records
// and wraps backend failures into the application's error taxonomy.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/unideck/unideck/internal/adapter/outbound/dummyjson"
	"github.com/unideck/unideck/internal/domain/auth"
	"github.com/unideck/unideck/internal/domain/course"
)

// defaultInstructor substitutes for records whose brand field is empty.
const defaultInstructor = "UoM Faculty"

// AccountSource yields the locally-registered accounts checked before a
// login goes to the network.
type AccountSource interface {
	LoadAccounts() auth.Accounts
}

// CatalogService exposes the catalog and auth operations the state layer
// dispatches. All remote access goes through the backend client; every
// failure crossing this boundary is one of *FetchError, *SearchError,
// *AuthError.
type CatalogService struct {
	client   *dummyjson.Client
	accounts AccountSource
	logger   *slog.Logger
}

// NewCatalogService creates a CatalogService.
// accounts may be nil when local-account login is not wanted (tests).
func NewCatalogService(client *dummyjson.Client, accounts AccountSource, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		client:   client,
		accounts: accounts,
		logger:   logger,
	}
}

// ListCourses fetches one page of the catalog and maps it into courses.
// Within the returned page every course id is unique: later duplicates of
// an id are dropped, keeping the first occurrence.
func (s *CatalogService) ListCourses(ctx context.Context, limit, skip int) (course.Page, error) {
	resp, err := s.client.ListProducts(ctx, limit, skip)
	if err != nil {
		s.logger.Warn("course list fetch failed", "error", err)
		return course.Page{}, &FetchError{Message: "failed to fetch courses", Cause: err}
	}

	return course.Page{
		Courses: dedupeByID(mapCourses(resp.Products)),
		Total:   resp.Total,
	}, nil
}

// GetCourseDetails fetches one record and maps it into the detail variant.
// Images defaults to a single-element gallery holding the course image when
// the record carries none.
func (s *CatalogService) GetCourseDetails(ctx context.Context, id int) (*course.Detail, error) {
	p, err := s.client.GetProduct(ctx, id)
	if err != nil {
		s.logger.Warn("course detail fetch failed", "id", id, "error", err)
		return nil, &FetchError{Message: "failed to fetch course details", Cause: err}
	}

	detail := &course.Detail{
		Course:  mapCourse(*p),
		Images:  p.Images,
		Reviews: mapReviews(p.Reviews),
		Stock:   p.Stock,
	}
	if len(detail.Images) == 0 {
		detail.Images = []string{detail.Image}
	}
	return detail, nil
}

// SearchCourses fetches records matching a free-text query and maps the
// reduced field set: search results carry no duration or instructor.
func (s *CatalogService) SearchCourses(ctx context.Context, query string) (course.Page, error) {
	resp, err := s.client.SearchProducts(ctx, query)
	if err != nil {
		s.logger.Warn("course search failed", "query", query, "error", err)
		return course.Page{}, &SearchError{Message: "search failed", Cause: err}
	}

	courses := make([]course.Course, 0, len(resp.Products))
	for _, p := range resp.Products {
		c := mapCourse(p)
		c.Duration = ""
		c.Instructor = ""
		courses = append(courses, c)
	}
	return course.Page{
		Courses: dedupeByID(courses),
		Total:   resp.Total,
	}, nil
}

// Login authenticates a credential pair. Locally-registered accounts are
// checked first and never reach the network; anything else is posted to the
// backend's auth endpoint. On any failure the caller gets *AuthError with
// its fixed message and no underlying cause.
func (s *CatalogService) Login(ctx context.Context, username, password string) (*auth.Session, error) {
	if session := s.localLogin(username, password); session != nil {
		return session, nil
	}

	resp, err := s.client.Login(ctx, username, password)
	if err != nil {
		s.logger.Warn("login failed", "username", username, "error", err)
		return nil, &AuthError{}
	}

	return &auth.Session{
		User: &auth.User{
			ID:        strconv.Itoa(resp.ID),
			Username:  resp.Username,
			Email:     resp.Email,
			FirstName: resp.FirstName,
			LastName:  resp.LastName,
			Image:     resp.Image,
		},
		Token: resp.BearerToken(),
	}, nil
}

// localLogin verifies a credential pair against locally-registered accounts.
// Returns nil when no local account matches; the caller then tries the
// backend.
func (s *CatalogService) localLogin(username, password string) *auth.Session {
	if s.accounts == nil {
		return nil
	}

	acct, err := s.accounts.LoadAccounts().Find(username)
	if err != nil || !acct.VerifyPassword(password) {
		return nil
	}

	user := acct.User
	s.logger.Debug("local account login", "username", username)
	return &auth.Session{
		User:  &user,
		Token: fmt.Sprintf("local-%s", uuid.NewString()),
	}
}

// mapCourse maps one remote product into a course. The decorative fields
// are derived from the record id, so repeated mappings of the same record
// agree.
func mapCourse(p dummyjson.Product) course.Course {
	instructor := p.Brand
	if instructor == "" {
		instructor = defaultInstructor
	}
	return course.Course{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Thumbnail,
		Category:    p.Category,
		Rating:      p.Rating,
		Price:       p.Price,
		Status:      course.DeriveStatus(p.ID),
		Duration:    course.DeriveDuration(p.ID),
		Instructor:  instructor,
	}
}

func mapCourses(products []dummyjson.Product) []course.Course {
	courses := make([]course.Course, 0, len(products))
	for _, p := range products {
		courses = append(courses, mapCourse(p))
	}
	return courses
}

func mapReviews(reviews []dummyjson.Review) []course.Review {
	if len(reviews) == 0 {
		return []course.Review{}
	}
	out := make([]course.Review, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, course.Review{
			Rating:        r.Rating,
			Comment:       r.Comment,
			Date:          r.Date,
			ReviewerName:  r.ReviewerName,
			ReviewerEmail: r.ReviewerEmail,
		})
	}
	return out
}

// dedupeByID keeps the first occurrence of each course id.
func dedupeByID(courses []course.Course) []course.Course {
	seen := make(map[int]struct{}, len(courses))
	out := courses[:0]
	for _, c := range courses {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
