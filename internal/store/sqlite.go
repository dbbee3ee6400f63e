package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/agritrace/farmtrace/internal/compliance"
	"github.com/agritrace/farmtrace/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. It serves
// single-node deployments and local development.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	username   TEXT NOT NULL UNIQUE,
	password   TEXT NOT NULL,
	full_name  TEXT NOT NULL,
	role       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	farm_id    TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS farms (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	location            TEXT NOT NULL,
	owner_name          TEXT NOT NULL,
	registration_number TEXT NOT NULL UNIQUE,
	contact_email       TEXT NOT NULL,
	contact_phone       TEXT NOT NULL,
	total_animals       INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS animals (
	id            TEXT PRIMARY KEY,
	farm_id       TEXT NOT NULL REFERENCES farms(id),
	tag_number    TEXT NOT NULL UNIQUE,
	name          TEXT NOT NULL,
	species       TEXT NOT NULL,
	breed         TEXT,
	date_of_birth TEXT,
	weight        TEXT,
	status        TEXT NOT NULL DEFAULT 'active'
);

CREATE TABLE IF NOT EXISTS treatment_records (
	id                     TEXT PRIMARY KEY,
	animal_id              TEXT NOT NULL,
	farm_id                TEXT NOT NULL,
	medicine_name          TEXT NOT NULL,
	antimicrobial_type     TEXT NOT NULL,
	dosage                 TEXT NOT NULL,
	unit                   TEXT NOT NULL,
	administered_by        TEXT NOT NULL,
	administered_date      TEXT NOT NULL,
	withdrawal_period_days INTEGER NOT NULL,
	withdrawal_end_date    TEXT NOT NULL,
	purpose_of_treatment   TEXT NOT NULL,
	mrl_level              TEXT,
	compliance_status      TEXT NOT NULL DEFAULT 'pending',
	notes                  TEXT,
	recorded_by            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS farm_reports (
	id          TEXT PRIMARY KEY,
	farm_id     TEXT NOT NULL,
	file_name   TEXT NOT NULL,
	file_type   TEXT NOT NULL,
	file_size   INTEGER NOT NULL,
	uploaded_by TEXT NOT NULL,
	uploaded_at TEXT NOT NULL,
	report_type TEXT NOT NULL,
	description TEXT
);

CREATE INDEX IF NOT EXISTS idx_animals_farm_id ON animals(farm_id);
CREATE INDEX IF NOT EXISTS idx_treatments_farm_id ON treatment_records(farm_id);
CREATE INDEX IF NOT EXISTS idx_treatments_animal_id ON treatment_records(animal_id);
CREATE INDEX IF NOT EXISTS idx_treatments_status ON treatment_records(compliance_status);
CREATE INDEX IF NOT EXISTS idx_farm_reports_farm_id ON farm_reports(farm_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrapf(err, "sqlite: rows affected for %s %s", entity, id)
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

// Users

func (s *SQLiteStore) scanUserRow(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.FullName, &u.Role, &u.Email, &u.FarmID, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := s.scanUserRow(s.db.QueryRowContext(ctx,
		`SELECT id, username, password, full_name, role, email, farm_id, created_at, updated_at FROM users WHERE id = ?`, id))
	return u, eris.Wrap(err, "sqlite: get user")
}

func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := s.scanUserRow(s.db.QueryRowContext(ctx,
		`SELECT id, username, password, full_name, role, email, farm_id, created_at, updated_at FROM users WHERE username = ?`, username))
	return u, eris.Wrap(err, "sqlite: get user by username")
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.scanUserRow(s.db.QueryRowContext(ctx,
		`SELECT id, username, password, full_name, role, email, farm_id, created_at, updated_at FROM users WHERE email = ?`, email))
	return u, eris.Wrap(err, "sqlite: get user by email")
}

func (s *SQLiteStore) CreateUser(ctx context.Context, in model.InsertUser) (*model.User, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password, full_name, role, email, farm_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.Username, in.Password, in.FullName, string(in.Role), in.Email, in.FarmID, now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert user")
	}

	return &model.User{
		ID:        id,
		Username:  in.Username,
		Password:  in.Password,
		FullName:  in.FullName,
		Role:      in.Role,
		Email:     in.Email,
		FarmID:    in.FarmID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, password, full_name, role, email, farm_id, created_at, updated_at FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list users")
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.FullName, &u.Role, &u.Email, &u.FarmID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan user")
		}
		users = append(users, u)
	}
	return users, eris.Wrap(rows.Err(), "sqlite: list users iterate")
}

func (s *SQLiteStore) UpdateUserRole(ctx context.Context, userID string, role model.Role) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		string(role), time.Now().UTC(), userID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update user role %s", userID)
	}
	return checkRowsAffected(res, "user", userID)
}

// Farms

func (s *SQLiteStore) ListFarms(ctx context.Context) ([]model.Farm, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, location, owner_name, registration_number, contact_email, contact_phone, total_animals FROM farms ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list farms")
	}
	defer rows.Close()

	var farms []model.Farm
	for rows.Next() {
		var f model.Farm
		if err := rows.Scan(&f.ID, &f.Name, &f.Location, &f.OwnerName, &f.RegistrationNumber, &f.ContactEmail, &f.ContactPhone, &f.TotalAnimals); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan farm")
		}
		farms = append(farms, f)
	}
	return farms, eris.Wrap(rows.Err(), "sqlite: list farms iterate")
}

func (s *SQLiteStore) GetFarm(ctx context.Context, id string) (*model.Farm, error) {
	var f model.Farm
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, location, owner_name, registration_number, contact_email, contact_phone, total_animals FROM farms WHERE id = ?`, id,
	).Scan(&f.ID, &f.Name, &f.Location, &f.OwnerName, &f.RegistrationNumber, &f.ContactEmail, &f.ContactPhone, &f.TotalAnimals)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get farm %s", id)
	}
	return &f, nil
}

func (s *SQLiteStore) CreateFarm(ctx context.Context, in model.InsertFarm) (*model.Farm, error) {
	id := uuid.New().String()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO farms (id, name, location, owner_name, registration_number, contact_email, contact_phone, total_animals)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0)`,
		id, in.Name, in.Location, in.OwnerName, in.RegistrationNumber, in.ContactEmail, in.ContactPhone,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert farm")
	}

	return &model.Farm{
		ID:                 id,
		Name:               in.Name,
		Location:           in.Location,
		OwnerName:          in.OwnerName,
		RegistrationNumber: in.RegistrationNumber,
		ContactEmail:       in.ContactEmail,
		ContactPhone:       in.ContactPhone,
	}, nil
}

func (s *SQLiteStore) UpdateFarmAnimalCount(ctx context.Context, farmID string, count int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE farms SET total_animals = ? WHERE id = ?`,
		count, farmID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update farm animal count %s", farmID)
	}
	return checkRowsAffected(res, "farm", farmID)
}

// Animals

func (s *SQLiteStore) ListAnimals(ctx context.Context) ([]model.Animal, error) {
	return s.queryAnimals(ctx,
		`SELECT id, farm_id, tag_number, name, species, breed, date_of_birth, weight, status FROM animals ORDER BY tag_number`)
}

func (s *SQLiteStore) ListAnimalsByFarm(ctx context.Context, farmID string) ([]model.Animal, error) {
	return s.queryAnimals(ctx,
		`SELECT id, farm_id, tag_number, name, species, breed, date_of_birth, weight, status FROM animals WHERE farm_id = ? ORDER BY tag_number`, farmID)
}

func (s *SQLiteStore) queryAnimals(ctx context.Context, query string, args ...any) ([]model.Animal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query animals")
	}
	defer rows.Close()

	var animals []model.Animal
	for rows.Next() {
		var a model.Animal
		if err := rows.Scan(&a.ID, &a.FarmID, &a.TagNumber, &a.Name, &a.Species, &a.Breed, &a.DateOfBirth, &a.Weight, &a.Status); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan animal")
		}
		animals = append(animals, a)
	}
	return animals, eris.Wrap(rows.Err(), "sqlite: animals iterate")
}

func (s *SQLiteStore) GetAnimal(ctx context.Context, id string) (*model.Animal, error) {
	var a model.Animal
	err := s.db.QueryRowContext(ctx,
		`SELECT id, farm_id, tag_number, name, species, breed, date_of_birth, weight, status FROM animals WHERE id = ?`, id,
	).Scan(&a.ID, &a.FarmID, &a.TagNumber, &a.Name, &a.Species, &a.Breed, &a.DateOfBirth, &a.Weight, &a.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get animal %s", id)
	}
	return &a, nil
}

func (s *SQLiteStore) CreateAnimal(ctx context.Context, in model.InsertAnimal) (*model.Animal, error) {
	id := uuid.New().String()
	status := in.Status
	if status == "" {
		status = model.AnimalActive
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO animals (id, farm_id, tag_number, name, species, breed, date_of_birth, weight, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.FarmID, in.TagNumber, in.Name, in.Species, in.Breed, in.DateOfBirth, in.Weight, string(status),
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert animal")
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE farms SET total_animals = (SELECT count(*) FROM animals WHERE farm_id = ?) WHERE id = ?`,
		in.FarmID, in.FarmID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: refresh farm animal count %s", in.FarmID)
	}

	return &model.Animal{
		ID:          id,
		FarmID:      in.FarmID,
		TagNumber:   in.TagNumber,
		Name:        in.Name,
		Species:     in.Species,
		Breed:       in.Breed,
		DateOfBirth: in.DateOfBirth,
		Weight:      in.Weight,
		Status:      status,
	}, nil
}

// Treatment records

const sqliteTreatmentCols = `id, animal_id, farm_id, medicine_name, antimicrobial_type, dosage, unit, administered_by, administered_date, withdrawal_period_days, withdrawal_end_date, purpose_of_treatment, mrl_level, compliance_status, notes, recorded_by`

func (s *SQLiteStore) ListTreatments(ctx context.Context) ([]model.TreatmentRecord, error) {
	return s.queryTreatments(ctx,
		`SELECT `+sqliteTreatmentCols+` FROM treatment_records ORDER BY administered_date DESC, id`)
}

func (s *SQLiteStore) ListTreatmentsByFarm(ctx context.Context, farmID string) ([]model.TreatmentRecord, error) {
	return s.queryTreatments(ctx,
		`SELECT `+sqliteTreatmentCols+` FROM treatment_records WHERE farm_id = ? ORDER BY administered_date DESC, id`, farmID)
}

func (s *SQLiteStore) ListTreatmentsByAnimal(ctx context.Context, animalID string) ([]model.TreatmentRecord, error) {
	return s.queryTreatments(ctx,
		`SELECT `+sqliteTreatmentCols+` FROM treatment_records WHERE animal_id = ? ORDER BY administered_date DESC, id`, animalID)
}

func (s *SQLiteStore) queryTreatments(ctx context.Context, query string, args ...any) ([]model.TreatmentRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query treatments")
	}
	defer rows.Close()

	var treatments []model.TreatmentRecord
	for rows.Next() {
		var t model.TreatmentRecord
		if err := rows.Scan(
			&t.ID, &t.AnimalID, &t.FarmID, &t.MedicineName, &t.AntimicrobialType,
			&t.Dosage, &t.Unit, &t.AdministeredBy, &t.AdministeredDate,
			&t.WithdrawalPeriodDays, &t.WithdrawalEndDate, &t.PurposeOfTreatment,
			&t.MRLLevel, &t.ComplianceStatus, &t.Notes, &t.RecordedBy,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan treatment")
		}
		treatments = append(treatments, t)
	}
	return treatments, eris.Wrap(rows.Err(), "sqlite: treatments iterate")
}

func (s *SQLiteStore) GetTreatment(ctx context.Context, id string) (*model.TreatmentRecord, error) {
	var t model.TreatmentRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteTreatmentCols+` FROM treatment_records WHERE id = ?`, id,
	).Scan(
		&t.ID, &t.AnimalID, &t.FarmID, &t.MedicineName, &t.AntimicrobialType,
		&t.Dosage, &t.Unit, &t.AdministeredBy, &t.AdministeredDate,
		&t.WithdrawalPeriodDays, &t.WithdrawalEndDate, &t.PurposeOfTreatment,
		&t.MRLLevel, &t.ComplianceStatus, &t.Notes, &t.RecordedBy,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get treatment %s", id)
	}
	return &t, nil
}

func (s *SQLiteStore) CreateTreatment(ctx context.Context, in model.InsertTreatmentRecord) (*model.TreatmentRecord, error) {
	id := uuid.New().String()
	status := compliance.Classify(in.MRLLevel, in.ComplianceStatus)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO treatment_records (`+sqliteTreatmentCols+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.AnimalID, in.FarmID, in.MedicineName, in.AntimicrobialType,
		in.Dosage, in.Unit, in.AdministeredBy, in.AdministeredDate,
		in.WithdrawalPeriodDays, in.WithdrawalEndDate, in.PurposeOfTreatment,
		in.MRLLevel, string(status), in.Notes, in.RecordedBy,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert treatment")
	}

	return &model.TreatmentRecord{
		ID:                   id,
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
		ComplianceStatus:     status,
		Notes:                in.Notes,
		RecordedBy:           in.RecordedBy,
	}, nil
}

// Farm reports

func (s *SQLiteStore) ListFarmReports(ctx context.Context) ([]model.FarmReport, error) {
	return s.queryFarmReports(ctx,
		`SELECT id, farm_id, file_name, file_type, file_size, uploaded_by, uploaded_at, report_type, description FROM farm_reports ORDER BY uploaded_at DESC, id`)
}

func (s *SQLiteStore) ListFarmReportsByFarm(ctx context.Context, farmID string) ([]model.FarmReport, error) {
	return s.queryFarmReports(ctx,
		`SELECT id, farm_id, file_name, file_type, file_size, uploaded_by, uploaded_at, report_type, description FROM farm_reports WHERE farm_id = ? ORDER BY uploaded_at DESC, id`, farmID)
}

func (s *SQLiteStore) queryFarmReports(ctx context.Context, query string, args ...any) ([]model.FarmReport, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query farm reports")
	}
	defer rows.Close()

	var reports []model.FarmReport
	for rows.Next() {
		var r model.FarmReport
		if err := rows.Scan(&r.ID, &r.FarmID, &r.FileName, &r.FileType, &r.FileSize, &r.UploadedBy, &r.UploadedAt, &r.ReportType, &r.Description); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan farm report")
		}
		reports = append(reports, r)
	}
	return reports, eris.Wrap(rows.Err(), "sqlite: farm reports iterate")
}

func (s *SQLiteStore) GetFarmReport(ctx context.Context, id string) (*model.FarmReport, error) {
	var r model.FarmReport
	err := s.db.QueryRowContext(ctx,
		`SELECT id, farm_id, file_name, file_type, file_size, uploaded_by, uploaded_at, report_type, description FROM farm_reports WHERE id = ?`, id,
	).Scan(&r.ID, &r.FarmID, &r.FileName, &r.FileType, &r.FileSize, &r.UploadedBy, &r.UploadedAt, &r.ReportType, &r.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get farm report %s", id)
	}
	return &r, nil
}

func (s *SQLiteStore) CreateFarmReport(ctx context.Context, in model.InsertFarmReport) (*model.FarmReport, error) {
	id := uuid.New().String()
	uploadedAt := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO farm_reports (id, farm_id, file_name, file_type, file_size, uploaded_by, uploaded_at, report_type, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.FarmID, in.FileName, in.FileType, in.FileSize, in.UploadedBy, uploadedAt, in.ReportType, in.Description,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert farm report")
	}

	return &model.FarmReport{
		ID:          id,
		FarmID:      in.FarmID,
		FileName:    in.FileName,
		FileType:    in.FileType,
		FileSize:    in.FileSize,
		UploadedBy:  in.UploadedBy,
		UploadedAt:  uploadedAt,
		ReportType:  in.ReportType,
		Description: in.Description,
	}, nil
}
