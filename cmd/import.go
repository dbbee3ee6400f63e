package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agritrace/farmtrace/internal/ingest"
	"github.com/agritrace/farmtrace/internal/store"
)

var importFilePath string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-load treatment records from a CSV or XLSX export",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		// Postgres gets the COPY-based upsert path; other backends insert
		// through the store.
		var sink ingest.Sink
		if pg, ok := st.(*store.PostgresStore); ok {
			sink = &ingest.BulkSink{Pool: pg.Pool()}
		} else {
			sink = &ingest.StoreSink{Store: st}
		}

		imp := ingest.NewImporter(sink, cfg.Import.BatchSize, cfg.Import.Workers)
		res, err := imp.Run(ctx, importFilePath)
		if err != nil {
			return eris.Wrap(err, "import treatments")
		}

		zap.L().Info("import complete",
			zap.String("file", importFilePath),
			zap.Int("rows", res.Rows),
			zap.Int("imported", res.Imported),
			zap.Int("rejected", res.Rejected),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFilePath, "file", "", "path to CSV or XLSX file (required)")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
