package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/agritrace/farmtrace/internal/model"
	"github.com/agritrace/farmtrace/internal/monitoring"
	"github.com/agritrace/farmtrace/internal/report"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var body struct {
		Role model.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !body.Role.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update user role")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := s.store.UpdateUserRole(r.Context(), userID, body.Role); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update user role")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Role updated"})
}

// handleSystemStats assembles the admin overview. The four collection fetches
// are independent, so they run concurrently.
func (s *Server) handleSystemStats(w http.ResponseWriter, r *http.Request) {
	var (
		users      []model.User
		farms      []model.Farm
		animals    []model.Animal
		treatments []model.TreatmentRecord
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		users, err = s.store.ListUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		farms, err = s.store.ListFarms(ctx)
		return err
	})
	g.Go(func() (err error) {
		animals, err = s.store.ListAnimals(ctx)
		return err
	})
	g.Go(func() (err error) {
		treatments, err = s.store.ListTreatments(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch system stats")
		return
	}

	writeJSON(w, http.StatusOK, report.ComputeSystemStats(users, farms, animals, treatments))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snap, err := monitoring.NewCollector(s.store).Collect(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to collect metrics")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
