package ingest

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/agritrace/farmtrace/internal/model"
)

// columnIndex maps normalized header names to their positions in a row.
type columnIndex map[string]int

// normalizeHeader collapses a header cell to a comparable key, so
// "Medicine Name", "medicine_name" and "medicineName" all bind to the same
// column.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}

// requiredColumns must all be present in the header row.
var requiredColumns = []string{
	"animalid", "farmid", "medicinename", "administereddate",
	"withdrawalenddate", "recordedby",
}

// BindHeader validates the header row and returns the column index.
func BindHeader(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if key == "" {
			continue
		}
		idx[key] = i
	}

	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, eris.Errorf("ingest: missing required column %q", col)
		}
	}
	return idx, nil
}

func (c columnIndex) get(row []string, key string) string {
	i, ok := c[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (c columnIndex) getPtr(row []string, key string) *string {
	v := c.get(row, key)
	if v == "" {
		return nil
	}
	return &v
}

// RecordFromRow maps one data row to an insert payload. Rows missing any
// required field are rejected with an error naming the field.
func (c columnIndex) RecordFromRow(row []string) (model.InsertTreatmentRecord, error) {
	var in model.InsertTreatmentRecord

	in.AnimalID = c.get(row, "animalid")
	in.FarmID = c.get(row, "farmid")
	in.MedicineName = c.get(row, "medicinename")
	in.AntimicrobialType = c.get(row, "antimicrobialtype")
	in.Dosage = c.get(row, "dosage")
	in.Unit = c.get(row, "unit")
	in.AdministeredBy = c.get(row, "administeredby")
	in.AdministeredDate = c.get(row, "administereddate")
	in.WithdrawalEndDate = c.get(row, "withdrawalenddate")
	in.PurposeOfTreatment = c.get(row, "purposeoftreatment")
	in.MRLLevel = c.getPtr(row, "mrllevel")
	in.Notes = c.getPtr(row, "notes")
	in.RecordedBy = c.get(row, "recordedby")

	if days := c.get(row, "withdrawalperioddays"); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil {
			return in, eris.Wrapf(err, "ingest: bad withdrawalPeriodDays %q", days)
		}
		in.WithdrawalPeriodDays = n
	}

	if status := c.get(row, "compliancestatus"); status != "" {
		cs := model.ComplianceStatus(status)
		if !cs.Valid() {
			return in, eris.Errorf("ingest: unknown complianceStatus %q", status)
		}
		in.ComplianceStatus = cs
	}

	if in.AnimalID == "" || in.FarmID == "" || in.MedicineName == "" || in.RecordedBy == "" {
		return in, eris.New("ingest: row missing required field")
	}
	return in, nil
}
