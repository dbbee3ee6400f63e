package report

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/agritrace/farmtrace/internal/model"
)

// ExportWorkbook writes a compliance workbook to path: a Summary sheet with
// the dashboard stats and status distribution, and a Treatments sheet listing
// every record.
func ExportWorkbook(path string, animals []model.Animal, treatments []model.TreatmentRecord, now time.Time) error {
	f := xlsx.NewFile()

	if err := writeSummarySheet(f, animals, treatments, now); err != nil {
		return err
	}
	if err := writeTreatmentsSheet(f, treatments); err != nil {
		return err
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "report: save workbook")
	}
	return nil
}

func writeSummarySheet(f *xlsx.File, animals []model.Animal, treatments []model.TreatmentRecord, now time.Time) error {
	sheet, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}

	stats := ComputeStats(animals, treatments, now)

	addKV := func(key string, value int) {
		row := sheet.AddRow()
		row.AddCell().Value = key
		row.AddCell().SetInt(value)
	}

	header := sheet.AddRow()
	header.AddCell().Value = "Generated"
	header.AddCell().Value = now.Format("2006-01-02")

	addKV("Total animals", stats.TotalAnimals)
	addKV("Active treatments", stats.ActiveTreatments)
	addKV("Compliance rate (%)", stats.ComplianceRate)
	addKV("Violations", stats.ViolationCount)
	addKV("Warnings", stats.WarningCount)
	addKV("Pending reports", stats.PendingReports)

	sheet.AddRow()
	distHeader := sheet.AddRow()
	distHeader.AddCell().Value = "Status"
	distHeader.AddCell().Value = "Treatments"
	for _, slice := range ComputeDistribution(treatments) {
		row := sheet.AddRow()
		row.AddCell().Value = slice.Name
		row.AddCell().SetInt(slice.Value)
	}
	return nil
}

var treatmentSheetHeader = []string{
	"ID", "Animal", "Farm", "Medicine", "Type", "Dosage", "Unit",
	"Administered by", "Administered", "Withdrawal days", "Withdrawal ends",
	"Purpose", "MRL (ppb)", "Status", "Recorded by",
}

func writeTreatmentsSheet(f *xlsx.File, treatments []model.TreatmentRecord) error {
	sheet, err := f.AddSheet("Treatments")
	if err != nil {
		return eris.Wrap(err, "report: add treatments sheet")
	}

	header := sheet.AddRow()
	for _, h := range treatmentSheetHeader {
		header.AddCell().Value = h
	}

	for _, t := range treatments {
		mrl := ""
		if t.MRLLevel != nil {
			mrl = *t.MRLLevel
		}
		row := sheet.AddRow()
		for _, v := range []string{
			t.ID, t.AnimalID, t.FarmID, t.MedicineName, t.AntimicrobialType,
			t.Dosage, t.Unit, t.AdministeredBy, t.AdministeredDate,
		} {
			row.AddCell().Value = v
		}
		row.AddCell().SetInt(t.WithdrawalPeriodDays)
		row.AddCell().Value = t.WithdrawalEndDate
		row.AddCell().Value = t.PurposeOfTreatment
		row.AddCell().Value = mrl
		row.AddCell().Value = string(t.ComplianceStatus)
		row.AddCell().Value = t.RecordedBy
	}
	return nil
}
