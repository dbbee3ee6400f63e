// Package monitoring watches the registry for compliance drift. The collector
// snapshots the current treatment population, the alerter turns a snapshot
// into webhook alerts when thresholds are breached, and the checker runs the
// two on a timer.
package monitoring

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/agritrace/farmtrace/internal/report"
	"github.com/agritrace/farmtrace/internal/store"
)

// ComplianceSnapshot holds a point-in-time view of registry compliance.
type ComplianceSnapshot struct {
	TotalTreatments   int       `json:"total_treatments"`
	ActiveWithdrawals int       `json:"active_withdrawals"`
	Violations        int       `json:"violations"`
	Warnings          int       `json:"warnings"`
	Pending           int       `json:"pending"`
	ComplianceRate    int       `json:"compliance_rate"`
	CollectedAt       time.Time `json:"collected_at"`
}

// Collector gathers compliance metrics from the store.
type Collector struct {
	store store.Store
	now   func() time.Time
}

// NewCollector creates a new compliance collector.
func NewCollector(st store.Store) *Collector {
	return &Collector{store: st, now: func() time.Time { return time.Now().UTC() }}
}

// Collect gathers a snapshot of compliance metrics across all treatments.
func (c *Collector) Collect(ctx context.Context) (*ComplianceSnapshot, error) {
	now := c.now()

	animals, err := c.store.ListAnimals(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list animals")
	}
	treatments, err := c.store.ListTreatments(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list treatments")
	}

	stats := report.ComputeStats(animals, treatments, now)

	return &ComplianceSnapshot{
		TotalTreatments:   len(treatments),
		ActiveWithdrawals: stats.ActiveTreatments,
		Violations:        stats.ViolationCount,
		Warnings:          stats.WarningCount,
		Pending:           stats.PendingReports,
		ComplianceRate:    stats.ComplianceRate,
		CollectedAt:       now,
	}, nil
}
