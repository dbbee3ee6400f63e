package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/agritrace/farmtrace/internal/model"
)

const sampleSeed = `
users:
  - username: alice
    password: demo-hash
    fullname: Alice Kelly
    role: farmer
    email: alice@example.com
farms:
  - name: Hilltop
    location: Galway
    owner_name: Alice Kelly
    registration_number: REG-1
    contact_email: alice@example.com
    contact_phone: "087 111 2222"
    animals:
      - tag_number: T-001
        name: Daisy
        species: cattle
        status: active
        treatments:
          - medicine_name: Amoxicillin
            antimicrobial_type: penicillin
            dosage: "10"
            unit: ml
            administered_by: vet-1
            administered_date: "2025-06-01"
            withdrawal_period_days: 7
            withdrawal_end_date: "2025-06-08"
            purpose_of_treatment: mastitis
            mrl_level: "42.5"
            recorded_by: vet-1
`

func TestSeedFileParsing(t *testing.T) {
	var sf seedFile
	require.NoError(t, yaml.Unmarshal([]byte(sampleSeed), &sf))

	require.Len(t, sf.Users, 1)
	assert.Equal(t, model.RoleFarmer, sf.Users[0].Role)
	assert.Equal(t, "Alice Kelly", sf.Users[0].FullName)

	require.Len(t, sf.Farms, 1)
	farm := sf.Farms[0]
	assert.Equal(t, "REG-1", farm.RegistrationNumber)

	require.Len(t, farm.Animals, 1)
	animal := farm.Animals[0]
	assert.Equal(t, "cattle", animal.Species)

	require.Len(t, animal.Treatments, 1)
	treatment := animal.Treatments[0]
	assert.Equal(t, 7, treatment.WithdrawalPeriodDays)
	require.NotNil(t, treatment.MRLLevel)
	assert.Equal(t, "42.5", *treatment.MRLLevel)
}
