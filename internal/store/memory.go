package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/agritrace/farmtrace/internal/compliance"
	"github.com/agritrace/farmtrace/internal/model"
)

// MemoryStore implements Store with mutex-guarded maps. It backs tests and
// the memory driver; nothing survives process exit. Insertion order is
// preserved so list results are deterministic.
type MemoryStore struct {
	mu sync.RWMutex

	users       map[string]model.User
	farms       map[string]model.Farm
	animals     map[string]model.Animal
	treatments  map[string]model.TreatmentRecord
	farmReports map[string]model.FarmReport

	userOrder      []string
	farmOrder      []string
	animalOrder    []string
	treatmentOrder []string
	reportOrder    []string
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		users:       make(map[string]model.User),
		farms:       make(map[string]model.Farm),
		animals:     make(map[string]model.Animal),
		treatments:  make(map[string]model.TreatmentRecord),
		farmReports: make(map[string]model.FarmReport),
	}
}

func (s *MemoryStore) Migrate(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

// Users

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.userOrder {
		if u := s.users[id]; u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.userOrder {
		if u := s.users[id]; u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, in model.InsertUser) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	u := model.User{
		ID:        uuid.New().String(),
		Username:  in.Username,
		Password:  in.Password,
		FullName:  in.FullName,
		Role:      in.Role,
		Email:     in.Email,
		FarmID:    in.FarmID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[u.ID] = u
	s.userOrder = append(s.userOrder, u.ID)
	return &u, nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]model.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (s *MemoryStore) UpdateUserRole(ctx context.Context, userID string, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return eris.Errorf("memory: user not found: %s", userID)
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	s.users[userID] = u
	return nil
}

// Farms

func (s *MemoryStore) ListFarms(ctx context.Context) ([]model.Farm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	farms := make([]model.Farm, 0, len(s.farmOrder))
	for _, id := range s.farmOrder {
		farms = append(farms, s.farms[id])
	}
	return farms, nil
}

func (s *MemoryStore) GetFarm(ctx context.Context, id string) (*model.Farm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f, ok := s.farms[id]; ok {
		return &f, nil
	}
	return nil, nil
}

func (s *MemoryStore) CreateFarm(ctx context.Context, in model.InsertFarm) (*model.Farm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := model.Farm{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		Location:           in.Location,
		OwnerName:          in.OwnerName,
		RegistrationNumber: in.RegistrationNumber,
		ContactEmail:       in.ContactEmail,
		ContactPhone:       in.ContactPhone,
		TotalAnimals:       0,
	}
	s.farms[f.ID] = f
	s.farmOrder = append(s.farmOrder, f.ID)
	return &f, nil
}

func (s *MemoryStore) UpdateFarmAnimalCount(ctx context.Context, farmID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.farms[farmID]
	if !ok {
		return eris.Errorf("memory: farm not found: %s", farmID)
	}
	f.TotalAnimals = count
	s.farms[farmID] = f
	return nil
}

// Animals

func (s *MemoryStore) ListAnimals(ctx context.Context) ([]model.Animal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	animals := make([]model.Animal, 0, len(s.animalOrder))
	for _, id := range s.animalOrder {
		animals = append(animals, s.animals[id])
	}
	return animals, nil
}

func (s *MemoryStore) GetAnimal(ctx context.Context, id string) (*model.Animal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.animals[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (s *MemoryStore) ListAnimalsByFarm(ctx context.Context, farmID string) ([]model.Animal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var animals []model.Animal
	for _, id := range s.animalOrder {
		if a := s.animals[id]; a.FarmID == farmID {
			animals = append(animals, a)
		}
	}
	return animals, nil
}

func (s *MemoryStore) CreateAnimal(ctx context.Context, in model.InsertAnimal) (*model.Animal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := in.Status
	if status == "" {
		status = model.AnimalActive
	}
	a := model.Animal{
		ID:          uuid.New().String(),
		FarmID:      in.FarmID,
		TagNumber:   in.TagNumber,
		Name:        in.Name,
		Species:     in.Species,
		Breed:       in.Breed,
		DateOfBirth: in.DateOfBirth,
		Weight:      in.Weight,
		Status:      status,
	}
	s.animals[a.ID] = a
	s.animalOrder = append(s.animalOrder, a.ID)

	// Keep the farm's denormalized animal count equal to the live count.
	if f, ok := s.farms[a.FarmID]; ok {
		count := 0
		for _, id := range s.animalOrder {
			if s.animals[id].FarmID == a.FarmID {
				count++
			}
		}
		f.TotalAnimals = count
		s.farms[a.FarmID] = f
	}
	return &a, nil
}

// Treatment records

func (s *MemoryStore) ListTreatments(ctx context.Context) ([]model.TreatmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	treatments := make([]model.TreatmentRecord, 0, len(s.treatmentOrder))
	for _, id := range s.treatmentOrder {
		treatments = append(treatments, s.treatments[id])
	}
	return treatments, nil
}

func (s *MemoryStore) GetTreatment(ctx context.Context, id string) (*model.TreatmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.treatments[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (s *MemoryStore) ListTreatmentsByFarm(ctx context.Context, farmID string) ([]model.TreatmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var treatments []model.TreatmentRecord
	for _, id := range s.treatmentOrder {
		if t := s.treatments[id]; t.FarmID == farmID {
			treatments = append(treatments, t)
		}
	}
	return treatments, nil
}

func (s *MemoryStore) ListTreatmentsByAnimal(ctx context.Context, animalID string) ([]model.TreatmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var treatments []model.TreatmentRecord
	for _, id := range s.treatmentOrder {
		if t := s.treatments[id]; t.AnimalID == animalID {
			treatments = append(treatments, t)
		}
	}
	return treatments, nil
}

func (s *MemoryStore) CreateTreatment(ctx context.Context, in model.InsertTreatmentRecord) (*model.TreatmentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := model.TreatmentRecord{
		ID:                   uuid.New().String(),
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
	s.treatments[t.ID] = t
	s.treatmentOrder = append(s.treatmentOrder, t.ID)
	return &t, nil
}

// Farm reports

func (s *MemoryStore) ListFarmReports(ctx context.Context) ([]model.FarmReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reports := make([]model.FarmReport, 0, len(s.reportOrder))
	for _, id := range s.reportOrder {
		reports = append(reports, s.farmReports[id])
	}
	return reports, nil
}

func (s *MemoryStore) GetFarmReport(ctx context.Context, id string) (*model.FarmReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.farmReports[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *MemoryStore) ListFarmReportsByFarm(ctx context.Context, farmID string) ([]model.FarmReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var reports []model.FarmReport
	for _, id := range s.reportOrder {
		if r := s.farmReports[id]; r.FarmID == farmID {
			reports = append(reports, r)
		}
	}
	return reports, nil
}

func (s *MemoryStore) CreateFarmReport(ctx context.Context, in model.InsertFarmReport) (*model.FarmReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := model.FarmReport{
		ID:          uuid.New().String(),
		FarmID:      in.FarmID,
		FileName:    in.FileName,
		FileType:    in.FileType,
		FileSize:    in.FileSize,
		UploadedBy:  in.UploadedBy,
		UploadedAt:  time.Now().UTC().Format(time.RFC3339),
		ReportType:  in.ReportType,
		Description: in.Description,
	}
	s.farmReports[r.ID] = r
	s.reportOrder = append(s.reportOrder, r.ID)
	return &r, nil
}
