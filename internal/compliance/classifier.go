// Package compliance implements the MRL threshold classification applied to
// every treatment record at creation time.
package compliance

import (
	"strconv"

	"github.com/agritrace/farmtrace/internal/model"
)

// Regulatory thresholds in parts-per-billion. A measurement below
// WarningThresholdPPB is compliant, below ViolationThresholdPPB is a warning,
// and anything at or above it is a violation.
const (
	WarningThresholdPPB   = 50
	ViolationThresholdPPB = 100
)

// Classify determines a treatment's compliance status from its measured
// residue level. mrlLevel is decimal text in ppb, or nil when no measurement
// was taken. When the level is absent, unparseable, or negative the supplied
// status is returned unchanged (pending if none was supplied); the classifier
// never invents a numeric verdict from missing or invalid data.
func Classify(mrlLevel *string, supplied model.ComplianceStatus) model.ComplianceStatus {
	fallback := supplied
	if fallback == "" {
		fallback = model.StatusPending
	}

	if mrlLevel == nil {
		return fallback
	}
	v, err := strconv.ParseFloat(*mrlLevel, 64)
	if err != nil || v < 0 {
		return fallback
	}
	return ClassifyValue(v)
}

// ClassifyValue maps a non-negative residue measurement to a status. Both
// boundaries belong to the higher band: exactly 50 is a warning, exactly 100
// is a violation.
func ClassifyValue(ppb float64) model.ComplianceStatus {
	switch {
	case ppb < WarningThresholdPPB:
		return model.StatusCompliant
	case ppb < ViolationThresholdPPB:
		return model.StatusWarning
	default:
		return model.StatusViolation
	}
}
