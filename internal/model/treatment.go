package model

// ComplianceStatus classifies a treatment's residue risk against MRL
// thresholds. It is assigned once when the record is created and is never
// recomputed afterwards.
type ComplianceStatus string

const (
	StatusCompliant ComplianceStatus = "compliant"
	StatusWarning   ComplianceStatus = "warning"
	StatusViolation ComplianceStatus = "violation"
	StatusPending   ComplianceStatus = "pending"
)

// Valid reports whether s is one of the four known compliance statuses.
func (s ComplianceStatus) Valid() bool {
	switch s {
	case StatusCompliant, StatusWarning, StatusViolation, StatusPending:
		return true
	}
	return false
}

// TreatmentRecord is a single antimicrobial treatment administered to an
// animal. Calendar dates are YYYY-MM-DD strings with no time component.
// MRLLevel is the measured residue level in parts-per-billion, kept as
// decimal text so the value round-trips without rounding.
type TreatmentRecord struct {
	ID                   string           `json:"id"`
	AnimalID             string           `json:"animalId"`
	FarmID               string           `json:"farmId"`
	MedicineName         string           `json:"medicineName"`
	AntimicrobialType    string           `json:"antimicrobialType"`
	Dosage               string           `json:"dosage"`
	Unit                 string           `json:"unit"`
	AdministeredBy       string           `json:"administeredBy"`
	AdministeredDate     string           `json:"administeredDate"`
	WithdrawalPeriodDays int              `json:"withdrawalPeriodDays"`
	WithdrawalEndDate    string           `json:"withdrawalEndDate"`
	PurposeOfTreatment   string           `json:"purposeOfTreatment"`
	MRLLevel             *string          `json:"mrlLevel,omitempty"`
	ComplianceStatus     ComplianceStatus `json:"complianceStatus"`
	Notes                *string          `json:"notes,omitempty"`
	RecordedBy           string           `json:"recordedBy"`
}

// InsertTreatmentRecord is the payload for creating a treatment record.
// ComplianceStatus is an optional explicit override; when MRLLevel is present
// and numeric the classifier's verdict wins regardless.
type InsertTreatmentRecord struct {
	AnimalID             string           `json:"animalId"`
	FarmID               string           `json:"farmId"`
	MedicineName         string           `json:"medicineName"`
	AntimicrobialType    string           `json:"antimicrobialType"`
	Dosage               string           `json:"dosage"`
	Unit                 string           `json:"unit"`
	AdministeredBy       string           `json:"administeredBy"`
	AdministeredDate     string           `json:"administeredDate"`
	WithdrawalPeriodDays int              `json:"withdrawalPeriodDays"`
	WithdrawalEndDate    string           `json:"withdrawalEndDate"`
	PurposeOfTreatment   string           `json:"purposeOfTreatment"`
	MRLLevel             *string          `json:"mrlLevel,omitempty"`
	ComplianceStatus     ComplianceStatus `json:"complianceStatus,omitempty"`
	Notes                *string          `json:"notes,omitempty"`
	RecordedBy           string           `json:"recordedBy"`
}
