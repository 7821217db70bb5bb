// Package course defines the catalog-facing course records produced by
// mapping remote product entries.
package course

// Status classifies a course for catalog display.
type Status string

// Valid course statuses.
const (
	StatusActive   Status = "Active"
	StatusUpcoming Status = "Upcoming"
	StatusPopular  Status = "Popular"
	StatusNew      Status = "New"
)

// Statuses lists every valid Status in a fixed order. The order matters:
// decorative status assignment indexes into it.
var Statuses = []Status{StatusActive, StatusUpcoming, StatusPopular, StatusNew}

// Course is a catalog entry derived from a remote product record.
// ID uniquely identifies a course within one fetched collection.
type Course struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`

	// Price is absent for some catalog sources; nil means "not priced",
	// which is distinct from free.
	Price *float64 `json:"price,omitempty"`

	// Status and Duration are decorative fields derived from the record id.
	// Search results carry a reduced field set and leave Duration and
	// Instructor empty.
	Status     Status `json:"status,omitempty"`
	Duration   string `json:"duration,omitempty"`
	Instructor string `json:"instructor,omitempty"`
}

// Review is an opaque reviewer comment carried on course details.
type Review struct {
	Rating        float64 `json:"rating"`
	Comment       string  `json:"comment"`
	Date          string  `json:"date"`
	ReviewerName  string  `json:"reviewerName"`
	ReviewerEmail string  `json:"reviewerEmail"`
}

// Detail is the expanded course record returned by a detail fetch.
type Detail struct {
	Course

	// Images is never empty: when the source record carries no gallery it
	// defaults to a single-element slice holding Image.
	Images  []string `json:"images"`
	Reviews []Review `json:"reviews"`
	Stock   int      `json:"stock"`
}

// Page is one wholesale-replaced page of the catalog.
type Page struct {
	Courses []Course `json:"courses"`
	Total   int      `json:"total"`
}
