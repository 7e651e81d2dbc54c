package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmafb/checkin/internal/survey"
)

var surveysForce bool

var surveysCmd = &cobra.Command{
	Use:   "surveys",
	Short: "List assigned surveys",
	Long: `List the surveys assigned to the logged-in account, with their
current status. Results come from the short-lived local cache unless --force
is given.`,
	RunE: runSurveys,
}

func init() {
	surveysCmd.Flags().BoolVar(&surveysForce, "force", false, "bypass the cached list and fetch from the server")
}

func runSurveys(cmd *cobra.Command, args []string) error {
	rt, closeAll, err := setup()
	if err != nil {
		return err
	}
	defer closeAll()

	if _, err := rt.store.LoadSession(); err != nil {
		return fmt.Errorf("not logged in, run 'checkin login' first")
	}

	items, err := rt.lists.Fetch(cmd.Context(), surveysForce)
	if err != nil {
		return fmt.Errorf("failed to fetch surveys: %w", err)
	}
	if len(items) == 0 {
		fmt.Println("No surveys assigned.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SURVEY ID\tTITLE\tSTATUS")
	for _, item := range items {
		status := item.Status
		if status == "" {
			status = survey.StatusNotStarted
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.SurveyID, item.Title(), status)
	}
	return w.Flush()
}
