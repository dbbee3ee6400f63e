package store

import (
	"context"

	"github.com/agritrace/farmtrace/internal/model"
)

// Store defines the persistence interface for the treatment registry.
// Lookup methods return (nil, nil) when no row matches. CreateTreatment is
// where the compliance classifier runs: every implementation classifies the
// insert payload and persists the resulting status with the record.
type Store interface {
	// Users
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, in model.InsertUser) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUserRole(ctx context.Context, userID string, role model.Role) error

	// Farms
	ListFarms(ctx context.Context) ([]model.Farm, error)
	GetFarm(ctx context.Context, id string) (*model.Farm, error)
	CreateFarm(ctx context.Context, in model.InsertFarm) (*model.Farm, error)
	UpdateFarmAnimalCount(ctx context.Context, farmID string, count int) error

	// Animals
	ListAnimals(ctx context.Context) ([]model.Animal, error)
	GetAnimal(ctx context.Context, id string) (*model.Animal, error)
	ListAnimalsByFarm(ctx context.Context, farmID string) ([]model.Animal, error)
	CreateAnimal(ctx context.Context, in model.InsertAnimal) (*model.Animal, error)

	// Treatment records
	ListTreatments(ctx context.Context) ([]model.TreatmentRecord, error)
	GetTreatment(ctx context.Context, id string) (*model.TreatmentRecord, error)
	ListTreatmentsByFarm(ctx context.Context, farmID string) ([]model.TreatmentRecord, error)
	ListTreatmentsByAnimal(ctx context.Context, animalID string) ([]model.TreatmentRecord, error)
	CreateTreatment(ctx context.Context, in model.InsertTreatmentRecord) (*model.TreatmentRecord, error)

	// Farm reports
	ListFarmReports(ctx context.Context) ([]model.FarmReport, error)
	GetFarmReport(ctx context.Context, id string) (*model.FarmReport, error)
	ListFarmReportsByFarm(ctx context.Context, farmID string) ([]model.FarmReport, error)
	CreateFarmReport(ctx context.Context, in model.InsertFarmReport) (*model.FarmReport, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
