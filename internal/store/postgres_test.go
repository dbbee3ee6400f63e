package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrace/farmtrace/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_GetUser_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, username, password, full_name, role, email, farm_id, created_at, updated_at FROM users WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	u, err := s.GetUser(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetUserByUsername(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "username", "password", "full_name", "role", "email", "farm_id", "created_at", "updated_at",
		}).AddRow("u-1", "alice", "hash", "Alice", model.RoleFarmer, "alice@example.com", (*string)(nil), now, now))

	u, err := s.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, model.RoleFarmer, u.Role)
	assert.Nil(t, u.FarmID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateUserRole_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE users SET role = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs("admin", pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateUserRole(context.Background(), "missing", model.RoleAdmin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateFarm(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO farms`).
		WithArgs(pgxmock.AnyArg(), "Hilltop", "Galway", "Kelly", "REG-1", "k@example.com", "1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	farm, err := s.CreateFarm(context.Background(), model.InsertFarm{
		Name: "Hilltop", Location: "Galway", OwnerName: "Kelly",
		RegistrationNumber: "REG-1", ContactEmail: "k@example.com", ContactPhone: "1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, farm.ID)
	assert.Equal(t, 0, farm.TotalAnimals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateAnimal_RefreshesFarmCount(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO animals`).
		WithArgs(pgxmock.AnyArg(), "f-1", "T-1", "Daisy", "cattle", (*string)(nil), (*string)(nil), (*string)(nil), "active").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`UPDATE farms SET total_animals = \(SELECT count\(\*\) FROM animals WHERE farm_id = \$1\) WHERE id = \$1`).
		WithArgs("f-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	a, err := s.CreateAnimal(context.Background(), model.InsertAnimal{
		FarmID: "f-1", TagNumber: "T-1", Name: "Daisy", Species: "cattle",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AnimalActive, a.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateTreatment_PersistsClassifierVerdict(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mrl := "150"
	mock.ExpectExec(`INSERT INTO treatment_records`).
		WithArgs(
			pgxmock.AnyArg(), "a-1", "f-1", "Tylosin", "macrolide",
			"10", "ml", "vet-1", "2025-06-01",
			14, "2025-06-15", "respiratory",
			&mrl, "violation", (*string)(nil), "vet-1",
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tr, err := s.CreateTreatment(context.Background(), model.InsertTreatmentRecord{
		AnimalID: "a-1", FarmID: "f-1", MedicineName: "Tylosin",
		AntimicrobialType: "macrolide", Dosage: "10", Unit: "ml",
		AdministeredBy: "vet-1", AdministeredDate: "2025-06-01",
		WithdrawalPeriodDays: 14, WithdrawalEndDate: "2025-06-15",
		PurposeOfTreatment: "respiratory", MRLLevel: &mrl,
		ComplianceStatus: model.StatusCompliant, // measurement overrides
		RecordedBy:       "vet-1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusViolation, tr.ComplianceStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetTreatment_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT .+ FROM treatment_records WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	tr, err := s.GetTreatment(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, tr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListTreatmentsByFarm(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mrl := "30"
	mock.ExpectQuery(`SELECT .+ FROM treatment_records WHERE farm_id = \$1`).
		WithArgs("f-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "animal_id", "farm_id", "medicine_name", "antimicrobial_type",
			"dosage", "unit", "administered_by", "administered_date",
			"withdrawal_period_days", "withdrawal_end_date", "purpose_of_treatment",
			"mrl_level", "compliance_status", "notes", "recorded_by",
		}).AddRow(
			"t-1", "a-1", "f-1", "Amoxicillin", "penicillin",
			"5", "ml", "vet-1", "2025-06-01",
			7, "2025-06-08", "mastitis",
			&mrl, model.StatusCompliant, (*string)(nil), "vet-1",
		))

	list, err := s.ListTreatmentsByFarm(context.Background(), "f-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.StatusCompliant, list[0].ComplianceStatus)
	require.NotNil(t, list[0].MRLLevel)
	assert.Equal(t, "30", *list[0].MRLLevel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListFarms_QueryError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT .+ FROM farms`).
		WillReturnError(assert.AnError)

	_, err := s.ListFarms(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list farms")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateFarmReport(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO farm_reports`).
		WithArgs(pgxmock.AnyArg(), "f-1", "q2.pdf", "pdf", 2048, "inspector-1", pgxmock.AnyArg(), "inspection", (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	r, err := s.CreateFarmReport(context.Background(), model.InsertFarmReport{
		FarmID: "f-1", FileName: "q2.pdf", FileType: "pdf", FileSize: 2048,
		UploadedBy: "inspector-1", ReportType: "inspection",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, r.UploadedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
