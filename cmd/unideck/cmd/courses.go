package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/unideck/unideck/internal/adapter/outbound/cel"
	"github.com/unideck/unideck/internal/domain/course"
)

var listOffline bool
var listFilter string

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List, show, and search courses",
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the course catalog",
	Long: `List the course catalog.

By default the listing is fetched from the remote API and mirrored into
the local cache. With --offline the last mirrored listing is shown
without any network access.

The --filter expression selects courses client-side. It sees the fields
id, title, description, category, instructor, status, duration, rating,
price, and priced, and must evaluate to a boolean.

Examples:
  unideck courses list
  unideck courses list --offline
  unideck courses list --filter 'rating >= 4.5'
  unideck courses list --filter 'category == "laptops" && priced'`,
	Args: cobra.NoArgs,
	RunE: runCoursesList,
}

var coursesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one course in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoursesShow,
}

var coursesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search courses by title",
	Long: `Search courses by title.

Queries shorter than three characters are answered locally without a
network round trip; an empty query lists the full catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: runCoursesSearch,
}

func init() {
	coursesListCmd.Flags().BoolVar(&listOffline, "offline", false, "serve the listing from the local cache")
	coursesListCmd.Flags().StringVar(&listFilter, "filter", "", "boolean filter expression applied client-side")
	coursesCmd.AddCommand(coursesListCmd)
	coursesCmd.AddCommand(coursesShowCmd)
	coursesCmd.AddCommand(coursesSearchCmd)
	rootCmd.AddCommand(coursesCmd)
}

func runCoursesList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	if listOffline {
		err = a.store.Catalog.FetchOffline(ctx)
		if err == nil && a.cache != nil {
			if cachedAt, cacheErr := a.cache.CachedAt(ctx); cacheErr == nil {
				fmt.Printf("offline listing cached at %s\n", cachedAt.Local().Format("2006-01-02 15:04"))
			}
		}
	} else {
		err = a.store.Catalog.Fetch(ctx)
	}
	if err != nil {
		return err
	}

	snap := a.store.Catalog.Snapshot()
	courses := snap.Courses
	if listFilter != "" {
		filter, err := cel.NewFilter()
		if err != nil {
			return err
		}
		courses, err = filter.Apply(ctx, listFilter, courses)
		if err != nil {
			return err
		}
	}

	printCourseTable(courses)
	fmt.Printf("%d of %d courses\n", len(courses), snap.Total)
	return nil
}

func runCoursesShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid course id %q", args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.store.Catalog.FetchDetails(cmd.Context(), id); err != nil {
		return err
	}
	detail := a.store.Catalog.Snapshot().CurrentCourse
	if detail == nil {
		return fmt.Errorf("course %d not found", id)
	}

	fmt.Printf("%s (#%d)\n", detail.Title, detail.ID)
	fmt.Printf("  Category:   %s\n", detail.Category)
	fmt.Printf("  Instructor: %s\n", detail.Instructor)
	fmt.Printf("  Status:     %s\n", detail.Status)
	fmt.Printf("  Duration:   %s\n", detail.Duration)
	fmt.Printf("  Rating:     %.1f\n", detail.Rating)
	fmt.Printf("  Price:      %s\n", formatPrice(detail.Price))
	fmt.Printf("  Seats left: %d\n", detail.Stock)
	if detail.Description != "" {
		fmt.Printf("\n%s\n", detail.Description)
	}
	if len(detail.Reviews) > 0 {
		fmt.Printf("\nReviews:\n")
		for _, r := range detail.Reviews {
			fmt.Printf("  %s\n", formatReview(r))
		}
	}
	return nil
}

func runCoursesSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.store.Catalog.Search(cmd.Context(), args[0]); err != nil {
		return err
	}
	snap := a.store.Catalog.Snapshot()
	if len(args[0]) > 0 && len(snap.Courses) == 0 && snap.Err == "" {
		fmt.Println("no matching courses")
		return nil
	}

	printCourseTable(snap.Courses)
	fmt.Printf("%d courses\n", len(snap.Courses))
	return nil
}

func printCourseTable(courses []course.Course) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tRATING\tPRICE\tSTATUS\tDURATION")
	for _, c := range courses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.1f\t%s\t%s\t%s\n",
			c.ID, c.Title, c.Category, c.Rating, formatPrice(c.Price), c.Status, c.Duration)
	}
	w.Flush()
}

func formatReview(r course.Review) string {
	return fmt.Sprintf("%.1f/5 %s: %s", r.Rating, r.ReviewerName, r.Comment)
}

func formatPrice(p *float64) string {
	if p == nil {
		return "free"
	}
	return fmt.Sprintf("$%.2f", *p)
}
