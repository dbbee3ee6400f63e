package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrace/farmtrace/internal/model"
)

func TestMemoryStore_Users(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	u, err := st.CreateUser(ctx, model.InsertUser{
		Username: "alice",
		Password: "hash",
		FullName: "Alice",
		Role:     model.RoleFarmer,
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byName, err := st.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := st.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)

	missing, err := st.GetUser(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, st.UpdateUserRole(ctx, u.ID, model.RoleAdmin))
	got, err := st.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, got.Role)
	assert.True(t, got.UpdatedAt.After(u.CreatedAt) || got.UpdatedAt.Equal(u.CreatedAt))

	assert.Error(t, st.UpdateUserRole(ctx, "nope", model.RoleAdmin))
}

func TestMemoryStore_AnimalCountInvariant(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	farm, err := st.CreateFarm(ctx, model.InsertFarm{Name: "Hilltop", RegistrationNumber: "REG-1"})
	require.NoError(t, err)
	assert.Equal(t, 0, farm.TotalAnimals)

	for i, tag := range []string{"T-1", "T-2", "T-3"} {
		_, err := st.CreateAnimal(ctx, model.InsertAnimal{
			FarmID: farm.ID, TagNumber: tag, Species: "cattle",
		})
		require.NoError(t, err)

		got, err := st.GetFarm(ctx, farm.ID)
		require.NoError(t, err)
		assert.Equal(t, i+1, got.TotalAnimals)
	}
}

func TestMemoryStore_AnimalStatusDefaultsToActive(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	a, err := st.CreateAnimal(ctx, model.InsertAnimal{
		FarmID: "f-1", TagNumber: "T-1", Species: "goat",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AnimalActive, a.Status)
}

func TestMemoryStore_TreatmentClassification(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	mrl := "99.99"
	tr, err := st.CreateTreatment(ctx, model.InsertTreatmentRecord{
		AnimalID:     "a-1",
		FarmID:       "f-1",
		MedicineName: "Amoxicillin",
		MRLLevel:     &mrl,
		RecordedBy:   "vet-1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusWarning, tr.ComplianceStatus)

	// No measurement and no supplied status comes back pending.
	tr, err = st.CreateTreatment(ctx, model.InsertTreatmentRecord{
		AnimalID: "a-1", FarmID: "f-1", MedicineName: "Tylosin", RecordedBy: "vet-1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, tr.ComplianceStatus)
}

func TestMemoryStore_ScopedLists(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	farmA, _ := st.CreateFarm(ctx, model.InsertFarm{Name: "A", RegistrationNumber: "REG-A"})
	farmB, _ := st.CreateFarm(ctx, model.InsertFarm{Name: "B", RegistrationNumber: "REG-B"})

	a1, err := st.CreateAnimal(ctx, model.InsertAnimal{FarmID: farmA.ID, TagNumber: "T-1", Species: "pig"})
	require.NoError(t, err)
	a2, err := st.CreateAnimal(ctx, model.InsertAnimal{FarmID: farmB.ID, TagNumber: "T-2", Species: "pig"})
	require.NoError(t, err)

	for _, animal := range []*model.Animal{a1, a1, a2} {
		_, err := st.CreateTreatment(ctx, model.InsertTreatmentRecord{
			AnimalID: animal.ID, FarmID: animal.FarmID, MedicineName: "Tylosin", RecordedBy: "vet-1",
		})
		require.NoError(t, err)
	}

	byFarm, err := st.ListTreatmentsByFarm(ctx, farmA.ID)
	require.NoError(t, err)
	assert.Len(t, byFarm, 2)

	byAnimal, err := st.ListTreatmentsByAnimal(ctx, a2.ID)
	require.NoError(t, err)
	assert.Len(t, byAnimal, 1)

	animals, err := st.ListAnimalsByFarm(ctx, farmB.ID)
	require.NoError(t, err)
	require.Len(t, animals, 1)
	assert.Equal(t, "T-2", animals[0].TagNumber)
}

func TestMemoryStore_FarmReports(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	r, err := st.CreateFarmReport(ctx, model.InsertFarmReport{
		FarmID:     "f-1",
		FileName:   "q2.pdf",
		FileType:   "pdf",
		FileSize:   1024,
		UploadedBy: "inspector-1",
		ReportType: "inspection",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, r.UploadedAt)

	byFarm, err := st.ListFarmReportsByFarm(ctx, "f-1")
	require.NoError(t, err)
	require.Len(t, byFarm, 1)

	missing, err := st.GetFarmReport(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStore_ListOrderIsInsertionOrder(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	names := []string{"first", "second", "third"}
	for i, n := range names {
		_, err := st.CreateFarm(ctx, model.InsertFarm{Name: n, RegistrationNumber: "REG-" + names[i]})
		require.NoError(t, err)
	}

	farms, err := st.ListFarms(ctx)
	require.NoError(t, err)
	require.Len(t, farms, 3)
	for i, n := range names {
		assert.Equal(t, n, farms[i].Name)
	}
}
