package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unideck/unideck/internal/domain/course"
)

var favouritesCmd = &cobra.Command{
	Use:   "favourites",
	Short: "Manage saved courses",
}

var favouritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved courses",
	Args:  cobra.NoArgs,
	RunE:  runFavouritesList,
}

var favouritesToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Save a course, or remove it if already saved",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavouritesToggle,
}

var favouritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all saved courses",
	Args:  cobra.NoArgs,
	RunE:  runFavouritesClear,
}

func init() {
	favouritesCmd.AddCommand(favouritesListCmd)
	favouritesCmd.AddCommand(favouritesToggleCmd)
	favouritesCmd.AddCommand(favouritesClearCmd)
	rootCmd.AddCommand(favouritesCmd)
}

func runFavouritesList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	a.store.Favourites.Load()
	favourites := a.store.Favourites.Snapshot()
	if len(favourites) == 0 {
		fmt.Println("no saved courses")
		return nil
	}
	printCourseTable(favourites)
	return nil
}

func runFavouritesToggle(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid course id %q", args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	a.store.Favourites.Load()
	if a.store.Favourites.IsFavourite(id) {
		// Removal matches by id; skip the network round trip.
		a.store.Favourites.Toggle(course.Course{ID: id})
		fmt.Printf("removed course %d from favourites\n", id)
		return nil
	}

	if err := a.store.Catalog.FetchDetails(cmd.Context(), id); err != nil {
		return err
	}
	detail := a.store.Catalog.Snapshot().CurrentCourse
	if detail == nil {
		return fmt.Errorf("course %d not found", id)
	}
	a.store.Favourites.Toggle(detail.Course)
	fmt.Printf("saved %q to favourites\n", detail.Title)
	return nil
}

func runFavouritesClear(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	a.store.Favourites.Load()
	a.store.Favourites.Clear()
	fmt.Println("favourites cleared")
	return nil
}
