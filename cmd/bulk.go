package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/resolve-cli/internal/model"
)

var (
	bulkFile       string
	bulkOut        string
	bulkConcurrent int
	bulkNoSave     bool
)

// bulkRow pairs an input query with its resolution outcome, preserving
// input order in the output.
type bulkRow struct {
	Query  model.SearchQuery   `json:"query"`
	Result *model.SearchResult `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

var bulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Resolve a CSV of business queries",
	Long:  "Reads a CSV with name, city, country, and activity columns and resolves each row. Searches run concurrently; each owns its own engine and aggregate.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		queries, err := readQueryCSV(bulkFile)
		if err != nil {
			return err
		}
		if len(queries) == 0 {
			return eris.New("bulk: no rows in input file")
		}
		zap.L().Info("bulk resolution starting",
			zap.Int("queries", len(queries)),
			zap.Int("concurrency", bulkConcurrent),
		)

		rows := make([]bulkRow, len(queries))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(bulkConcurrent)
		for i, q := range queries {
			g.Go(func() error {
				rows[i].Query = q
				result, err := newEngine().Resolve(gctx, q, nil)
				if err != nil {
					rows[i].Error = err.Error()
					zap.L().Warn("bulk row failed", zap.String("name", q.Name), zap.Error(err))
					return nil
				}
				rows[i].Result = result
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "bulk: resolve")
		}

		if !bulkNoSave {
			if err := saveBulkHistory(ctx, rows); err != nil {
				zap.L().Warn("failed to save bulk history", zap.Error(err))
			}
		}

		out := os.Stdout
		if bulkOut != "" {
			f, err := os.Create(bulkOut)
			if err != nil {
				return eris.Wrapf(err, "bulk: create output %s", bulkOut)
			}
			defer f.Close() //nolint:errcheck
			out = f
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	},
}

func saveBulkHistory(ctx context.Context, rows []bulkRow) error {
	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return err
	}
	for i := range rows {
		if rows[i].Result == nil {
			continue
		}
		rec := &model.SearchRecord{Query: rows[i].Query, Result: rows[i].Result}
		if err := st.SaveSearch(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// readQueryCSV parses the input file. The header row names the columns;
// only "name" is required.
func readQueryCSV(path string) ([]model.SearchQuery, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "bulk: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrap(err, "bulk: read header")
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["name"]; !ok {
		return nil, eris.New("bulk: input must have a name column")
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var queries []model.SearchQuery
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "bulk: read row")
		}
		q := model.SearchQuery{
			Name:     field(record, "name"),
			City:     field(record, "city"),
			Country:  field(record, "country"),
			Activity: field(record, "activity"),
			Mode:     model.ModeSingle,
		}
		if q.Name == "" {
			continue
		}
		queries = append(queries, q)
	}
	return queries, nil
}

func init() {
	bulkCmd.Flags().StringVar(&bulkFile, "file", "", "input CSV path (required)")
	bulkCmd.Flags().StringVar(&bulkOut, "out", "", "output JSON path (default stdout)")
	bulkCmd.Flags().IntVar(&bulkConcurrent, "concurrency", 5, "max concurrent searches")
	bulkCmd.Flags().BoolVar(&bulkNoSave, "no-save", false, "skip writing searches to history")
	_ = bulkCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(bulkCmd)
}
