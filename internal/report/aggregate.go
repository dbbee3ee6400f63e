// Package report computes the dashboard and reporting statistics derived
// from the current record collections. Every function here is pure: it takes
// the full snapshot it needs, recomputes from scratch, and holds no state.
package report

import (
	"math"
	"time"

	"github.com/agritrace/farmtrace/internal/model"
)

// dateLayout is the calendar-date format used across the system.
const dateLayout = "2006-01-02"

// Stats is the farmer/inspector dashboard summary.
type Stats struct {
	TotalAnimals     int `json:"totalAnimals"`
	ActiveTreatments int `json:"activeTreatments"`
	ComplianceRate   int `json:"complianceRate"`
	PendingReports   int `json:"pendingReports"`
	ViolationCount   int `json:"violationCount"`
	WarningCount     int `json:"warningCount"`
}

// TrendPoint is one month's treatment count in the 6-month trend series.
type TrendPoint struct {
	Month      string `json:"month"`
	Treatments int    `json:"treatments"`
}

// StatusSlice is one segment of the compliance distribution chart.
type StatusSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// SystemStats is the admin-wide overview.
type SystemStats struct {
	TotalUsers       int        `json:"totalUsers"`
	TotalFarms       int        `json:"totalFarms"`
	TotalAnimals     int        `json:"totalAnimals"`
	TotalTreatments  int        `json:"totalTreatments"`
	ActiveViolations int        `json:"activeViolations"`
	ActiveWarnings   int        `json:"activeWarnings"`
	UsersByRole      RoleCounts `json:"usersByRole"`
}

// RoleCounts breaks the user population down by role.
type RoleCounts struct {
	Farmers    int `json:"farmers"`
	Inspectors int `json:"inspectors"`
	Admins     int `json:"admins"`
}

// ComputeStats builds the dashboard summary. A treatment is active while its
// withdrawal end date is strictly after now. An empty treatment set reads as
// fully compliant: the rate defaults to 100.
func ComputeStats(animals []model.Animal, treatments []model.TreatmentRecord, now time.Time) Stats {
	s := Stats{
		TotalAnimals:   len(animals),
		ComplianceRate: 100,
	}

	var compliant int
	for _, t := range treatments {
		if end, err := time.Parse(dateLayout, t.WithdrawalEndDate); err == nil && end.After(now) {
			s.ActiveTreatments++
		}
		switch t.ComplianceStatus {
		case model.StatusCompliant:
			compliant++
		case model.StatusWarning:
			s.WarningCount++
		case model.StatusViolation:
			s.ViolationCount++
		case model.StatusPending:
			s.PendingReports++
		}
	}

	if len(treatments) > 0 {
		s.ComplianceRate = int(math.Round(float64(compliant) / float64(len(treatments)) * 100))
	}
	return s
}

// ComputeTrends buckets treatments by administration month over a sliding
// window of the 6 calendar months ending at now's month, oldest first. The
// window moves with now, so two calls in different months see different
// buckets. Always returns exactly 6 entries.
func ComputeTrends(treatments []model.TreatmentRecord, now time.Time) []TrendPoint {
	trends := make([]TrendPoint, 0, 6)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := 5; i >= 0; i-- {
		bucket := firstOfMonth.AddDate(0, -i, 0)

		count := 0
		for _, t := range treatments {
			d, err := time.Parse(dateLayout, t.AdministeredDate)
			if err != nil {
				continue
			}
			if d.Month() == bucket.Month() && d.Year() == bucket.Year() {
				count++
			}
		}

		trends = append(trends, TrendPoint{
			Month:      monthLabel(bucket),
			Treatments: count,
		})
	}
	return trends
}

// distributionColors are the chart color tokens the dashboard expects, in the
// fixed Compliant, Warning, Violation, Pending order.
var distributionColors = []struct {
	name   string
	status model.ComplianceStatus
	color  string
}{
	{"Compliant", model.StatusCompliant, "hsl(var(--chart-1))"},
	{"Warning", model.StatusWarning, "hsl(var(--chart-4))"},
	{"Violation", model.StatusViolation, "hsl(var(--destructive))"},
	{"Pending", model.StatusPending, "hsl(var(--muted))"},
}

// ComputeDistribution returns the status breakdown for the compliance pie
// chart. Statuses with no matching treatments are dropped from the result
// entirely rather than reported as zero.
func ComputeDistribution(treatments []model.TreatmentRecord) []StatusSlice {
	counts := make(map[model.ComplianceStatus]int, 4)
	for _, t := range treatments {
		counts[t.ComplianceStatus]++
	}

	slices := make([]StatusSlice, 0, 4)
	for _, d := range distributionColors {
		if counts[d.status] == 0 {
			continue
		}
		slices = append(slices, StatusSlice{
			Name:  d.name,
			Value: counts[d.status],
			Color: d.color,
		})
	}
	return slices
}

// ComputeSystemStats builds the admin overview. Violation and warning counts
// here are raw status counts with no withdrawal-window filter.
func ComputeSystemStats(users []model.User, farms []model.Farm, animals []model.Animal, treatments []model.TreatmentRecord) SystemStats {
	s := SystemStats{
		TotalUsers:      len(users),
		TotalFarms:      len(farms),
		TotalAnimals:    len(animals),
		TotalTreatments: len(treatments),
	}

	for _, t := range treatments {
		switch t.ComplianceStatus {
		case model.StatusViolation:
			s.ActiveViolations++
		case model.StatusWarning:
			s.ActiveWarnings++
		}
	}

	for _, u := range users {
		switch u.Role {
		case model.RoleFarmer:
			s.UsersByRole.Farmers++
		case model.RoleInspector:
			s.UsersByRole.Inspectors++
		case model.RoleAdmin:
			s.UsersByRole.Admins++
		}
	}
	return s
}

// monthLabel formats a month as the dashboard's axis label, e.g. "Jan '25".
func monthLabel(t time.Time) string {
	return t.Format("Jan '06")
}
