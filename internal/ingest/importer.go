package ingest

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/agritrace/farmtrace/internal/compliance"
	"github.com/agritrace/farmtrace/internal/db"
	"github.com/agritrace/farmtrace/internal/model"
	"github.com/agritrace/farmtrace/internal/store"
)

// importNamespace seeds the deterministic record IDs, so re-importing the
// same file upserts instead of duplicating.
var importNamespace = uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")

// recordID derives a stable ID from the fields that identify a treatment in
// the source file.
func recordID(in model.InsertTreatmentRecord) string {
	key := in.AnimalID + "|" + in.MedicineName + "|" + in.AdministeredDate
	return uuid.NewSHA1(importNamespace, []byte(key)).String()
}

// Sink receives classified batches of treatment records.
type Sink interface {
	Flush(ctx context.Context, records []model.TreatmentRecord) (int64, error)
}

// Result summarizes an import run.
type Result struct {
	Rows     int // data rows seen
	Imported int // records written
	Rejected int // rows that failed mapping
}

// Importer drives the read, map, classify, flush pipeline.
type Importer struct {
	sink      Sink
	batchSize int
	workers   int
}

// NewImporter creates an Importer writing to sink. batchSize and workers fall
// back to sane values when non-positive.
func NewImporter(sink Sink, batchSize, workers int) *Importer {
	if batchSize <= 0 {
		batchSize = 500
	}
	if workers <= 0 {
		workers = 4
	}
	return &Importer{sink: sink, batchSize: batchSize, workers: workers}
}

// Run imports every row of the file at path. Rows that fail mapping are
// counted as rejected and skipped; batch flushes run concurrently across
// workers. Returns the per-run summary.
func (imp *Importer) Run(ctx context.Context, path string) (*Result, error) {
	header, rows, err := ReadRows(ctx, path)
	if err != nil {
		return nil, err
	}
	idx, err := BindHeader(header)
	if err != nil {
		return nil, err
	}

	res := &Result{Rows: len(rows)}

	var batch []model.TreatmentRecord
	batches := make(chan []model.TreatmentRecord, imp.workers)

	g, gctx := errgroup.WithContext(ctx)

	var imported int64
	var importedCh = make(chan int64, imp.workers)
	for i := 0; i < imp.workers; i++ {
		g.Go(func() error {
			var n int64
			for b := range batches {
				written, err := imp.sink.Flush(gctx, b)
				if err != nil {
					return err
				}
				n += written
			}
			importedCh <- n
			return nil
		})
	}

	for _, row := range rows {
		in, err := idx.RecordFromRow(row)
		if err != nil {
			res.Rejected++
			continue
		}

		batch = append(batch, classified(in))
		if len(batch) >= imp.batchSize {
			select {
			case batches <- batch:
			case <-gctx.Done():
				close(batches)
				if werr := g.Wait(); werr != nil {
					return nil, werr
				}
				return nil, eris.Wrap(gctx.Err(), "ingest: import cancelled")
			}
			batch = nil
		}
	}
	if len(batch) > 0 {
		select {
		case batches <- batch:
		case <-gctx.Done():
		}
	}
	close(batches)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(importedCh)
	for n := range importedCh {
		imported += n
	}

	res.Imported = int(imported)
	return res, nil
}

// classified builds the full record: deterministic ID plus the classifier
// verdict, exactly what CreateTreatment would persist.
func classified(in model.InsertTreatmentRecord) model.TreatmentRecord {
	return model.TreatmentRecord{
		ID:                   recordID(in),
		AnimalID:             in.AnimalID,
		FarmID:               in.FarmID,
		MedicineName:         in.MedicineName,
		AntimicrobialType:    in.AntimicrobialType,
		Dosage:               in.Dosage,
		Unit:                 in.Unit,
		AdministeredBy:       in.AdministeredBy,
		AdministeredDate:     in.AdministeredDate,
		WithdrawalPeriodDays: in.WithdrawalPeriodDays,
		WithdrawalEndDate:    in.WithdrawalEndDate,
		PurposeOfTreatment:   in.PurposeOfTreatment,
		MRLLevel:             in.MRLLevel,
		ComplianceStatus:     compliance.Classify(in.MRLLevel, in.ComplianceStatus),
		Notes:                in.Notes,
		RecordedBy:           in.RecordedBy,
	}
}

// BulkSink upserts batches straight into Postgres with COPY, keyed on the
// deterministic record ID.
type BulkSink struct {
	Pool db.Pool
}

var bulkColumns = []string{
	"id", "animal_id", "farm_id", "medicine_name", "antimicrobial_type",
	"dosage", "unit", "administered_by", "administered_date",
	"withdrawal_period_days", "withdrawal_end_date", "purpose_of_treatment",
	"mrl_level", "compliance_status", "notes", "recorded_by",
}

func (s *BulkSink) Flush(ctx context.Context, records []model.TreatmentRecord) (int64, error) {
	rows := make([][]any, len(records))
	for i, t := range records {
		rows[i] = []any{
			t.ID, t.AnimalID, t.FarmID, t.MedicineName, t.AntimicrobialType,
			t.Dosage, t.Unit, t.AdministeredBy, t.AdministeredDate,
			t.WithdrawalPeriodDays, t.WithdrawalEndDate, t.PurposeOfTreatment,
			t.MRLLevel, string(t.ComplianceStatus), t.Notes, t.RecordedBy,
		}
	}

	return db.BulkUpsert(ctx, s.Pool, db.UpsertConfig{
		Table:        "treatment_records",
		Columns:      bulkColumns,
		ConflictKeys: []string{"id"},
	}, rows)
}

// StoreSink writes through the store one record at a time, for the SQLite and
// memory backends where COPY is unavailable. The store re-runs classification
// on the insert payload and reaches the same verdict.
type StoreSink struct {
	Store store.Store
}

func (s *StoreSink) Flush(ctx context.Context, records []model.TreatmentRecord) (int64, error) {
	var n int64
	for _, t := range records {
		_, err := s.Store.CreateTreatment(ctx, model.InsertTreatmentRecord{
			AnimalID:             t.AnimalID,
			FarmID:               t.FarmID,
			MedicineName:         t.MedicineName,
			AntimicrobialType:    t.AntimicrobialType,
			Dosage:               t.Dosage,
			Unit:                 t.Unit,
			AdministeredBy:       t.AdministeredBy,
			AdministeredDate:     t.AdministeredDate,
			WithdrawalPeriodDays: t.WithdrawalPeriodDays,
			WithdrawalEndDate:    t.WithdrawalEndDate,
			PurposeOfTreatment:   t.PurposeOfTreatment,
			MRLLevel:             t.MRLLevel,
			ComplianceStatus:     t.ComplianceStatus,
			Notes:                t.Notes,
			RecordedBy:           t.RecordedBy,
		})
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
