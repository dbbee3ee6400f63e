package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/agritrace/farmtrace/internal/compliance"
	"github.com/agritrace/farmtrace/internal/db"
	"github.com/agritrace/farmtrace/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations. The list
// and dashboard endpoints hit these on every request.
var preparedStatements = map[string]string{
	"list_treatments":   `SELECT id, animal_id, farm_id, medicine_name, antimicrobial_type, dosage, unit, administered_by, administered_date, withdrawal_period_days, withdrawal_end_date, purpose_of_treatment, mrl_level, compliance_status, notes, recorded_by FROM treatment_records ORDER BY administered_date DESC, id`,
	"insert_treatment":  `INSERT INTO treatment_records (id, animal_id, farm_id, medicine_name, antimicrobial_type, dosage, unit, administered_by, administered_date, withdrawal_period_days, withdrawal_end_date, purpose_of_treatment, mrl_level, compliance_status, notes, recorded_by) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
	"list_animals":      `SELECT id, farm_id, tag_number, name, species, breed, date_of_birth, weight, status FROM animals ORDER BY tag_number`,
	"list_farms":        `SELECT id, name, location, owner_name, registration_number, contact_email, contact_phone, total_animals FROM farms ORDER BY name`,
	"get_user_by_name":  `SELECT id, username, password, full_name, role, email, farm_id, created_at, updated_at FROM users WHERE username = $1`,
	"update_farm_count": `UPDATE farms SET total_animals = $1 WHERE id = $2`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// Pool returns the underlying database pool for use by subsystems that need
// direct query access (e.g., bulk treatment import).
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

// Decimal-valued fields (mrl_level, weight, dosage) are stored as text so the
// measured value round-trips exactly; classification parses them on write.
const postgresMigration = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	username   TEXT NOT NULL UNIQUE,
	password   TEXT NOT NULL,
	full_name  TEXT NOT NULL,
	role       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	farm_id    TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS farms (
	id                  TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name                TEXT NOT NULL,
	location            TEXT NOT NULL,
	owner_name          TEXT NOT NULL,
	registration_number TEXT NOT NULL UNIQUE,
	contact_email       TEXT NOT NULL,
	contact_phone       TEXT NOT NULL,
	total_animals       INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS animals (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
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
	id                     TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
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
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
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
CREATE INDEX IF NOT EXISTS idx_treatments_administered ON treatment_records(administered_date);
CREATE INDEX IF NOT EXISTS idx_farm_reports_farm_id ON farm_reports(farm_id);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// Users

const userColumns = `id, username, password, full_name, role, email, farm_id, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.FullName, &u.Role, &u.Email, &u.FarmID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get user %s", id)
	}
	return u, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: get user by username")
	}
	return u, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: get user by email")
	}
	return u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, in model.InsertUser) (*model.User, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, username, password, full_name, role, email, farm_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, in.Username, in.Password, in.FullName, string(in.Role), in.Email, in.FarmID, now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert user")
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

func (s *PostgresStore) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list users")
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan user")
		}
		users = append(users, *u)
	}
	return users, eris.Wrap(rows.Err(), "postgres: list users iterate")
}

func (s *PostgresStore) UpdateUserRole(ctx context.Context, userID string, role model.Role) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`,
		string(role), time.Now().UTC(), userID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update user role %s", userID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("user not found: %s", userID)
	}
	return nil
}

// Farms

const farmColumns = `id, name, location, owner_name, registration_number, contact_email, contact_phone, total_animals`

func scanFarm(row pgx.Row) (*model.Farm, error) {
	var f model.Farm
	if err := row.Scan(&f.ID, &f.Name, &f.Location, &f.OwnerName, &f.RegistrationNumber, &f.ContactEmail, &f.ContactPhone, &f.TotalAnimals); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *PostgresStore) ListFarms(ctx context.Context) ([]model.Farm, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+farmColumns+` FROM farms ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list farms")
	}
	defer rows.Close()

	var farms []model.Farm
	for rows.Next() {
		f, err := scanFarm(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan farm")
		}
		farms = append(farms, *f)
	}
	return farms, eris.Wrap(rows.Err(), "postgres: list farms iterate")
}

func (s *PostgresStore) GetFarm(ctx context.Context, id string) (*model.Farm, error) {
	f, err := scanFarm(s.pool.QueryRow(ctx,
		`SELECT `+farmColumns+` FROM farms WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get farm %s", id)
	}
	return f, nil
}

func (s *PostgresStore) CreateFarm(ctx context.Context, in model.InsertFarm) (*model.Farm, error) {
	id := uuid.New().String()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO farms (id, name, location, owner_name, registration_number, contact_email, contact_phone, total_animals)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 0)`,
		id, in.Name, in.Location, in.OwnerName, in.RegistrationNumber, in.ContactEmail, in.ContactPhone,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert farm")
	}

	return &model.Farm{
		ID:                 id,
		Name:               in.Name,
		Location:           in.Location,
		OwnerName:          in.OwnerName,
		RegistrationNumber: in.RegistrationNumber,
		ContactEmail:       in.ContactEmail,
		ContactPhone:       in.ContactPhone,
		TotalAnimals:       0,
	}, nil
}

func (s *PostgresStore) UpdateFarmAnimalCount(ctx context.Context, farmID string, count int) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE farms SET total_animals = $1 WHERE id = $2`,
		count, farmID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update farm animal count %s", farmID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("farm not found: %s", farmID)
	}
	return nil
}

// Animals

const animalColumns = `id, farm_id, tag_number, name, species, breed, date_of_birth, weight, status`

func scanAnimal(row pgx.Row) (*model.Animal, error) {
	var a model.Animal
	if err := row.Scan(&a.ID, &a.FarmID, &a.TagNumber, &a.Name, &a.Species, &a.Breed, &a.DateOfBirth, &a.Weight, &a.Status); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *PostgresStore) ListAnimals(ctx context.Context) ([]model.Animal, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+animalColumns+` FROM animals ORDER BY tag_number`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list animals")
	}
	defer rows.Close()
	return collectAnimals(rows)
}

func (s *PostgresStore) GetAnimal(ctx context.Context, id string) (*model.Animal, error) {
	a, err := scanAnimal(s.pool.QueryRow(ctx,
		`SELECT `+animalColumns+` FROM animals WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get animal %s", id)
	}
	return a, nil
}

func (s *PostgresStore) ListAnimalsByFarm(ctx context.Context, farmID string) ([]model.Animal, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+animalColumns+` FROM animals WHERE farm_id = $1 ORDER BY tag_number`, farmID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list animals by farm")
	}
	defer rows.Close()
	return collectAnimals(rows)
}

func collectAnimals(rows pgx.Rows) ([]model.Animal, error) {
	var animals []model.Animal
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan animal")
		}
		animals = append(animals, *a)
	}
	return animals, eris.Wrap(rows.Err(), "postgres: animals iterate")
}

func (s *PostgresStore) CreateAnimal(ctx context.Context, in model.InsertAnimal) (*model.Animal, error) {
	id := uuid.New().String()
	status := in.Status
	if status == "" {
		status = model.AnimalActive
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO animals (id, farm_id, tag_number, name, species, breed, date_of_birth, weight, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, in.FarmID, in.TagNumber, in.Name, in.Species, in.Breed, in.DateOfBirth, in.Weight, string(status),
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert animal")
	}

	// Keep the farm's denormalized count equal to the live animal count.
	_, err = s.pool.Exec(ctx,
		`UPDATE farms SET total_animals = (SELECT count(*) FROM animals WHERE farm_id = $1) WHERE id = $1`,
		in.FarmID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: refresh farm animal count %s", in.FarmID)
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

const treatmentColumns = `id, animal_id, farm_id, medicine_name, antimicrobial_type, dosage, unit, administered_by, administered_date, withdrawal_period_days, withdrawal_end_date, purpose_of_treatment, mrl_level, compliance_status, notes, recorded_by`

func scanTreatment(row pgx.Row) (*model.TreatmentRecord, error) {
	var t model.TreatmentRecord
	if err := row.Scan(
		&t.ID, &t.AnimalID, &t.FarmID, &t.MedicineName, &t.AntimicrobialType,
		&t.Dosage, &t.Unit, &t.AdministeredBy, &t.AdministeredDate,
		&t.WithdrawalPeriodDays, &t.WithdrawalEndDate, &t.PurposeOfTreatment,
		&t.MRLLevel, &t.ComplianceStatus, &t.Notes, &t.RecordedBy,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *PostgresStore) ListTreatments(ctx context.Context) ([]model.TreatmentRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+treatmentColumns+` FROM treatment_records ORDER BY administered_date DESC, id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list treatments")
	}
	defer rows.Close()
	return collectTreatments(rows)
}

func (s *PostgresStore) GetTreatment(ctx context.Context, id string) (*model.TreatmentRecord, error) {
	t, err := scanTreatment(s.pool.QueryRow(ctx,
		`SELECT `+treatmentColumns+` FROM treatment_records WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get treatment %s", id)
	}
	return t, nil
}

func (s *PostgresStore) ListTreatmentsByFarm(ctx context.Context, farmID string) ([]model.TreatmentRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+treatmentColumns+` FROM treatment_records WHERE farm_id = $1 ORDER BY administered_date DESC, id`, farmID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list treatments by farm")
	}
	defer rows.Close()
	return collectTreatments(rows)
}

func (s *PostgresStore) ListTreatmentsByAnimal(ctx context.Context, animalID string) ([]model.TreatmentRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+treatmentColumns+` FROM treatment_records WHERE animal_id = $1 ORDER BY administered_date DESC, id`, animalID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list treatments by animal")
	}
	defer rows.Close()
	return collectTreatments(rows)
}

func collectTreatments(rows pgx.Rows) ([]model.TreatmentRecord, error) {
	var treatments []model.TreatmentRecord
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan treatment")
		}
		treatments = append(treatments, *t)
	}
	return treatments, eris.Wrap(rows.Err(), "postgres: treatments iterate")
}

func (s *PostgresStore) CreateTreatment(ctx context.Context, in model.InsertTreatmentRecord) (*model.TreatmentRecord, error) {
	id := uuid.New().String()

	// Classification happens exactly once, here, and the verdict is stored
	// with the record.
	status := compliance.Classify(in.MRLLevel, in.ComplianceStatus)

	_, err := s.pool.Exec(ctx,
		`INSERT INTO treatment_records (id, animal_id, farm_id, medicine_name, antimicrobial_type, dosage, unit, administered_by, administered_date, withdrawal_period_days, withdrawal_end_date, purpose_of_treatment, mrl_level, compliance_status, notes, recorded_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		id, in.AnimalID, in.FarmID, in.MedicineName, in.AntimicrobialType,
		in.Dosage, in.Unit, in.AdministeredBy, in.AdministeredDate,
		in.WithdrawalPeriodDays, in.WithdrawalEndDate, in.PurposeOfTreatment,
		in.MRLLevel, string(status), in.Notes, in.RecordedBy,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert treatment")
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

const reportColumns = `id, farm_id, file_name, file_type, file_size, uploaded_by, uploaded_at, report_type, description`

func scanFarmReport(row pgx.Row) (*model.FarmReport, error) {
	var r model.FarmReport
	if err := row.Scan(&r.ID, &r.FarmID, &r.FileName, &r.FileType, &r.FileSize, &r.UploadedBy, &r.UploadedAt, &r.ReportType, &r.Description); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PostgresStore) ListFarmReports(ctx context.Context) ([]model.FarmReport, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+reportColumns+` FROM farm_reports ORDER BY uploaded_at DESC, id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list farm reports")
	}
	defer rows.Close()
	return collectFarmReports(rows)
}

func (s *PostgresStore) GetFarmReport(ctx context.Context, id string) (*model.FarmReport, error) {
	r, err := scanFarmReport(s.pool.QueryRow(ctx,
		`SELECT `+reportColumns+` FROM farm_reports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get farm report %s", id)
	}
	return r, nil
}

func (s *PostgresStore) ListFarmReportsByFarm(ctx context.Context, farmID string) ([]model.FarmReport, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+reportColumns+` FROM farm_reports WHERE farm_id = $1 ORDER BY uploaded_at DESC, id`, farmID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list farm reports by farm")
	}
	defer rows.Close()
	return collectFarmReports(rows)
}

func collectFarmReports(rows pgx.Rows) ([]model.FarmReport, error) {
	var reports []model.FarmReport
	for rows.Next() {
		r, err := scanFarmReport(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan farm report")
		}
		reports = append(reports, *r)
	}
	return reports, eris.Wrap(rows.Err(), "postgres: farm reports iterate")
}

func (s *PostgresStore) CreateFarmReport(ctx context.Context, in model.InsertFarmReport) (*model.FarmReport, error) {
	id := uuid.New().String()
	uploadedAt := time.Now().UTC().Format(time.RFC3339)

	_, err := s.pool.Exec(ctx,
		`INSERT INTO farm_reports (id, farm_id, file_name, file_type, file_size, uploaded_by, uploaded_at, report_type, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, in.FarmID, in.FileName, in.FileType, in.FileSize, in.UploadedBy, uploadedAt, in.ReportType, in.Description,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert farm report")
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
