package cel

import (
	"context"
	"strings"
	"testing"

	"github.com/unideck/unideck/internal/domain/course"
)

func price(v float64) *float64 { return &v }

func testCourses() []course.Course {
	return []course.Course{
		{ID: 1, Title: "Intro to Go", Category: "programming", Rating: 4.7, Price: price(49.90), Status: course.StatusActive, Instructor: "Acme"},
		{ID: 2, Title: "Databases", Category: "data", Rating: 3.9, Price: price(20), Status: course.StatusNew},
		{ID: 3, Title: "Free Seminar", Category: "programming", Rating: 4.9, Status: course.StatusPopular},
	}
}

func TestApply(t *testing.T) {
	f, err := NewFilter()
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}

	tests := []struct {
		name    string
		expr    string
		wantIDs []int
	}{
		{"rating threshold", `rating > 4.5`, []int{1, 3}},
		{"category and price", `category == "programming" && price < 50.0`, []int{1, 3}},
		{"priced only", `priced && price < 30.0`, []int{2}},
		{"status", `status == "New"`, []int{2}},
		{"title contains", `title.contains("Go")`, []int{1}},
		{"instructor default unmatched", `instructor == "UoM Faculty"`, nil},
		{"nothing matches", `rating > 5.0`, nil},
		{"everything matches", `id >= 1`, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Apply(context.Background(), tt.expr, testCourses())
			if err != nil {
				t.Fatalf("Apply(%q): %v", tt.expr, err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Apply(%q) kept %d courses, want %d: %+v", tt.expr, len(got), len(tt.wantIDs), got)
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("result[%d].ID = %d, want %d", i, got[i].ID, want)
				}
			}
		})
	}
}

func TestCompile_Rejections(t *testing.T) {
	f, err := NewFilter()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"syntax error", `rating >`},
		{"unknown variable", `enrolment > 10`},
		{"non-boolean result", `rating + 1.0`},
		{"too long", `rating > 1.0 || ` + strings.Repeat("true || ", 200) + "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.Compile(tt.expr); err == nil {
				t.Errorf("Compile(%q) succeeded, want error", tt.expr)
			}
		})
	}
}

func TestApply_PreservesOrder(t *testing.T) {
	f, err := NewFilter()
	if err != nil {
		t.Fatal(err)
	}

	got, err := f.Apply(context.Background(), `rating > 0.0`, testCourses())
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].ID > got[i].ID {
			t.Errorf("order not preserved: %v", got)
		}
	}
}
