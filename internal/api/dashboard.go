package api

import (
	"net/http"

	"github.com/agritrace/farmtrace/internal/report"
)

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	animals, err := s.store.ListAnimals(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}
	treatments, err := s.store.ListTreatments(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	writeJSON(w, http.StatusOK, report.ComputeStats(animals, treatments, s.now()))
}

func (s *Server) handleDashboardTrends(w http.ResponseWriter, r *http.Request) {
	treatments, err := s.store.ListTreatments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch treatment trends")
		return
	}

	writeJSON(w, http.StatusOK, report.ComputeTrends(treatments, s.now()))
}

func (s *Server) handleDashboardCompliance(w http.ResponseWriter, r *http.Request) {
	treatments, err := s.store.ListTreatments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch compliance data")
		return
	}

	writeJSON(w, http.StatusOK, report.ComputeDistribution(treatments))
}
