package model

// Farm is a registered holding. TotalAnimals is denormalized: the store
// recomputes it from the live animal count whenever an animal is added.
type Farm struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Location           string `json:"location"`
	OwnerName          string `json:"ownerName"`
	RegistrationNumber string `json:"registrationNumber"`
	ContactEmail       string `json:"contactEmail"`
	ContactPhone       string `json:"contactPhone"`
	TotalAnimals       int    `json:"totalAnimals"`
}

// InsertFarm is the payload for registering a farm.
type InsertFarm struct {
	Name               string `json:"name"`
	Location           string `json:"location"`
	OwnerName          string `json:"ownerName"`
	RegistrationNumber string `json:"registrationNumber"`
	ContactEmail       string `json:"contactEmail"`
	ContactPhone       string `json:"contactPhone"`
}

// AnimalStatus is an animal's lifecycle state, independent of treatment
// compliance.
type AnimalStatus string

const (
	AnimalActive     AnimalStatus = "active"
	AnimalQuarantine AnimalStatus = "quarantine"
	AnimalSold       AnimalStatus = "sold"
	AnimalDeceased   AnimalStatus = "deceased"
)

// Species values accepted for animals.
var Species = []string{"cattle", "sheep", "goat", "pig", "poultry"}

// ValidSpecies reports whether s is a known species.
func ValidSpecies(s string) bool {
	for _, sp := range Species {
		if s == sp {
			return true
		}
	}
	return false
}

// Animal belongs to exactly one farm and carries a unique tag number.
type Animal struct {
	ID          string       `json:"id"`
	FarmID      string       `json:"farmId"`
	TagNumber   string       `json:"tagNumber"`
	Name        string       `json:"name"`
	Species     string       `json:"species"`
	Breed       *string      `json:"breed,omitempty"`
	DateOfBirth *string      `json:"dateOfBirth,omitempty"`
	Weight      *string      `json:"weight,omitempty"`
	Status      AnimalStatus `json:"status"`
}

// InsertAnimal is the payload for registering an animal. Status defaults to
// active when omitted.
type InsertAnimal struct {
	FarmID      string       `json:"farmId"`
	TagNumber   string       `json:"tagNumber"`
	Name        string       `json:"name"`
	Species     string       `json:"species"`
	Breed       *string      `json:"breed,omitempty"`
	DateOfBirth *string      `json:"dateOfBirth,omitempty"`
	Weight      *string      `json:"weight,omitempty"`
	Status      AnimalStatus `json:"status,omitempty"`
}
