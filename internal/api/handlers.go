package api

import (
	"encoding/json"
	"net/http"

	"github.com/agritrace/farmtrace/internal/model"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Farms

func (s *Server) handleListFarms(w http.ResponseWriter, r *http.Request) {
	farms, err := s.store.ListFarms(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch farms")
		return
	}
	if farms == nil {
		farms = []model.Farm{}
	}
	writeJSON(w, http.StatusOK, farms)
}

func (s *Server) handleCreateFarm(w http.ResponseWriter, r *http.Request) {
	var in model.InsertFarm
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if in.Name == "" || in.RegistrationNumber == "" {
		writeError(w, http.StatusBadRequest, "name and registrationNumber are required")
		return
	}

	farm, err := s.store.CreateFarm(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	writeJSON(w, http.StatusCreated, farm)
}

// Animals

func (s *Server) handleListAnimals(w http.ResponseWriter, r *http.Request) {
	animals, err := s.store.ListAnimals(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch animals")
		return
	}
	if animals == nil {
		animals = []model.Animal{}
	}
	writeJSON(w, http.StatusOK, animals)
}

func (s *Server) handleCreateAnimal(w http.ResponseWriter, r *http.Request) {
	var in model.InsertAnimal
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if in.FarmID == "" || in.TagNumber == "" {
		writeError(w, http.StatusBadRequest, "farmId and tagNumber are required")
		return
	}
	if !model.ValidSpecies(in.Species) {
		writeError(w, http.StatusBadRequest, "Invalid species")
		return
	}
	if in.Status != "" {
		switch in.Status {
		case model.AnimalActive, model.AnimalQuarantine, model.AnimalSold, model.AnimalDeceased:
		default:
			writeError(w, http.StatusBadRequest, "Invalid status")
			return
		}
	}

	animal, err := s.store.CreateAnimal(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	writeJSON(w, http.StatusCreated, animal)
}

// Treatment records

func (s *Server) handleListTreatments(w http.ResponseWriter, r *http.Request) {
	treatments, err := s.store.ListTreatments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch treatments")
		return
	}
	if treatments == nil {
		treatments = []model.TreatmentRecord{}
	}
	writeJSON(w, http.StatusOK, treatments)
}

func (s *Server) handleCreateTreatment(w http.ResponseWriter, r *http.Request) {
	var in model.InsertTreatmentRecord
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if in.AnimalID == "" || in.FarmID == "" || in.MedicineName == "" || in.RecordedBy == "" {
		writeError(w, http.StatusBadRequest, "animalId, farmId, medicineName and recordedBy are required")
		return
	}
	if in.ComplianceStatus != "" && !in.ComplianceStatus.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid complianceStatus")
		return
	}

	treatment, err := s.store.CreateTreatment(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	writeJSON(w, http.StatusCreated, treatment)
}

// Farm reports

func (s *Server) handleListFarmReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.store.ListFarmReports(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch reports")
		return
	}
	if reports == nil {
		reports = []model.FarmReport{}
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleCreateFarmReport(w http.ResponseWriter, r *http.Request) {
	var in model.InsertFarmReport
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if in.FarmID == "" || in.ReportType == "" || in.UploadedBy == "" || in.FileName == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	switch in.FileType {
	case "pdf", "excel", "csv":
	default:
		writeError(w, http.StatusBadRequest, "Invalid fileType")
		return
	}

	report, err := s.store.CreateFarmReport(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Upload failed")
		return
	}
	writeJSON(w, http.StatusCreated, report)
}
