package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/resolve-cli/internal/model"
	"github.com/sells-group/resolve-cli/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past searches",
	Long:  "Commands for listing and viewing resolved searches.",
}

// -- history list --

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past searches",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		records, err := st.ListSearches(ctx, store.Filter{
			Name:   name,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return eris.Wrap(err, "history list")
		}

		if len(records) == 0 {
			fmt.Fprintln(os.Stderr, "No searches found.")
			return nil
		}

		formatSearchList(os.Stdout, records)
		return nil
	},
}

// -- history show --

var historyShowCmd = &cobra.Command{
	Use:   "show <search-id>",
	Short: "Show the full record of one search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		rec, err := st.GetSearch(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "history show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func init() {
	historyListCmd.Flags().String("name", "", "filter by queried business name")
	historyListCmd.Flags().Int("limit", 50, "max number of searches to display")
	historyListCmd.Flags().Int("offset", 0, "number of searches to skip")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

// formatSearchList writes a tabular list of search records to w.
func formatSearchList(out io.Writer, records []model.SearchRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSCORE\tSUCCESS\tSOURCES\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t----\t-----\t-------\t-------\t-------")

	for _, r := range records {
		score := ""
		success := ""
		sources := 0
		if r.Result != nil {
			score = fmt.Sprintf("%.0f", r.Result.MatchScore)
			success = fmt.Sprintf("%t", r.Result.Success)
			sources = len(r.Result.Sources)
		}

		name := r.Query.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			truncateID(r.ID),
			name,
			score,
			success,
			sources,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
