package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/resolve-cli/internal/model"
)

var (
	resolveName     string
	resolveCity     string
	resolveCountry  string
	resolveActivity string
	resolveBulk     bool
	resolveMax      int
	resolveNoSave   bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a single business query",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		query := model.SearchQuery{
			Name:       resolveName,
			City:       resolveCity,
			Country:    resolveCountry,
			Activity:   resolveActivity,
			Mode:       model.ModeSingle,
			MaxResults: resolveMax,
		}
		if resolveBulk {
			query.Mode = model.ModeBulk
		}

		engine := newEngine()

		result, err := engine.Resolve(ctx, query, func(percent int, message string) {
			fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", percent, message)
		})
		if err != nil {
			return eris.Wrap(err, "resolve")
		}

		if !resolveNoSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}
			rec := &model.SearchRecord{Query: query, Result: result}
			if err := st.SaveSearch(ctx, rec); err != nil {
				zap.L().Warn("failed to save search history", zap.Error(err))
			} else {
				zap.L().Info("search saved", zap.String("id", rec.ID))
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveName, "name", "", "business name (required)")
	resolveCmd.Flags().StringVar(&resolveCity, "city", "", "city")
	resolveCmd.Flags().StringVar(&resolveCountry, "country", "", "country")
	resolveCmd.Flags().StringVar(&resolveActivity, "activity", "", "business activity or category")
	resolveCmd.Flags().BoolVar(&resolveBulk, "bulk", false, "return a ranked candidate list instead of one resolved entity")
	resolveCmd.Flags().IntVar(&resolveMax, "max-results", 0, "max candidates in bulk mode (default from config)")
	resolveCmd.Flags().BoolVar(&resolveNoSave, "no-save", false, "skip writing the search to history")
	_ = resolveCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(resolveCmd)
}
