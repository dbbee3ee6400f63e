package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/agritrace/farmtrace/internal/model"
)

var seedFilePath string

// seedFile mirrors the demo-data YAML layout: users are flat, animals nest
// under their farm, and treatments nest under their animal.
type seedFile struct {
	Users []model.InsertUser `yaml:"users"`
	Farms []seedFarm         `yaml:"farms"`
}

type seedFarm struct {
	Name               string       `yaml:"name"`
	Location           string       `yaml:"location"`
	OwnerName          string       `yaml:"owner_name"`
	RegistrationNumber string       `yaml:"registration_number"`
	ContactEmail       string       `yaml:"contact_email"`
	ContactPhone       string       `yaml:"contact_phone"`
	Animals            []seedAnimal `yaml:"animals"`
}

type seedAnimal struct {
	TagNumber   string          `yaml:"tag_number"`
	Name        string          `yaml:"name"`
	Species     string          `yaml:"species"`
	Breed       *string         `yaml:"breed"`
	DateOfBirth *string         `yaml:"date_of_birth"`
	Weight      *string         `yaml:"weight"`
	Status      string          `yaml:"status"`
	Treatments  []seedTreatment `yaml:"treatments"`
}

type seedTreatment struct {
	MedicineName         string  `yaml:"medicine_name"`
	AntimicrobialType    string  `yaml:"antimicrobial_type"`
	Dosage               string  `yaml:"dosage"`
	Unit                 string  `yaml:"unit"`
	AdministeredBy       string  `yaml:"administered_by"`
	AdministeredDate     string  `yaml:"administered_date"`
	WithdrawalPeriodDays int     `yaml:"withdrawal_period_days"`
	WithdrawalEndDate    string  `yaml:"withdrawal_end_date"`
	PurposeOfTreatment   string  `yaml:"purpose_of_treatment"`
	MRLLevel             *string `yaml:"mrl_level"`
	Notes                *string `yaml:"notes"`
	RecordedBy           string  `yaml:"recorded_by"`
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo farms, animals, users and treatments from a YAML file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(seedFilePath)
		if err != nil {
			return eris.Wrap(err, "seed: read file")
		}
		var sf seedFile
		if err := yaml.Unmarshal(data, &sf); err != nil {
			return eris.Wrap(err, "seed: parse yaml")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		var users, farms, animals, treatments int

		for _, u := range sf.Users {
			if _, err := st.CreateUser(ctx, u); err != nil {
				return eris.Wrapf(err, "seed: create user %s", u.Username)
			}
			users++
		}

		for _, f := range sf.Farms {
			farm, err := st.CreateFarm(ctx, model.InsertFarm{
				Name:               f.Name,
				Location:           f.Location,
				OwnerName:          f.OwnerName,
				RegistrationNumber: f.RegistrationNumber,
				ContactEmail:       f.ContactEmail,
				ContactPhone:       f.ContactPhone,
			})
			if err != nil {
				return eris.Wrapf(err, "seed: create farm %s", f.Name)
			}
			farms++

			for _, a := range f.Animals {
				animal, err := st.CreateAnimal(ctx, model.InsertAnimal{
					FarmID:      farm.ID,
					TagNumber:   a.TagNumber,
					Name:        a.Name,
					Species:     a.Species,
					Breed:       a.Breed,
					DateOfBirth: a.DateOfBirth,
					Weight:      a.Weight,
					Status:      model.AnimalStatus(a.Status),
				})
				if err != nil {
					return eris.Wrapf(err, "seed: create animal %s", a.TagNumber)
				}
				animals++

				for _, t := range a.Treatments {
					if _, err := st.CreateTreatment(ctx, model.InsertTreatmentRecord{
						AnimalID:             animal.ID,
						FarmID:               farm.ID,
						MedicineName:         t.MedicineName,
						AntimicrobialType:    t.AntimicrobialType,
						Dosage:               t.Dosage,
						Unit:                 t.Unit,
						AdministeredBy:       t.AdministeredBy,
						AdministeredDate:     t.AdministeredDate,
						WithdrawalPeriodDays: t.WithdrawalPeriodDays,
						WithdrawalEndDate:    t.WithdrawalEndDate,
						PurposeOfTreatment:   t.PurposeOfTreatment,
						MRLLevel:             t.MRLLevel,
						Notes:                t.Notes,
						RecordedBy:           t.RecordedBy,
					}); err != nil {
						return eris.Wrapf(err, "seed: create treatment for %s", a.TagNumber)
					}
					treatments++
				}
			}
		}

		zap.L().Info("seed complete",
			zap.Int("users", users),
			zap.Int("farms", farms),
			zap.Int("animals", animals),
			zap.Int("treatments", treatments),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFilePath, "file", "seed.yaml", "path to seed YAML file")
	rootCmd.AddCommand(seedCmd)
}
