package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agritrace/farmtrace/internal/model"
	"github.com/agritrace/farmtrace/internal/report"
)

var exportOutPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the compliance workbook to an XLSX file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		var (
			animals    []model.Animal
			treatments []model.TreatmentRecord
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			animals, err = st.ListAnimals(gctx)
			return err
		})
		g.Go(func() (err error) {
			treatments, err = st.ListTreatments(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "export: fetch collections")
		}

		if err := report.ExportWorkbook(exportOutPath, animals, treatments, time.Now().UTC()); err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.String("file", exportOutPath),
			zap.Int("treatments", len(treatments)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOutPath, "out", "compliance.xlsx", "output XLSX path")
	rootCmd.AddCommand(exportCmd)
}
