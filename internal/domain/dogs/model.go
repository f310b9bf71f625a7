package dogs

import "time"

// Category es la etapa de vida del perro; reemplaza los prefijos de id (puppy_, partner_...).
// @Enum guide_dog, puppy_in_training, retired, breeding_parent
type Category string

const (
	CategoryGuideDog       Category = "guide_dog"
	CategoryPuppy          Category = "puppy_in_training"
	CategoryRetired        Category = "retired"
	CategoryBreedingParent Category = "breeding_parent"
)

// Categories en el orden en que se muestran en los reportes.
var Categories = []Category{
	CategoryGuideDog,
	CategoryPuppy,
	CategoryRetired,
	CategoryBreedingParent,
}

func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Sex del perro.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Caregiver es el contacto responsable del perro en su categoría actual.
type Caregiver struct {
	Name  string
	Phone string
	Email string
}

type Dog struct {
	ID string

	Name     string
	Category Category
	Breed    string
	Sex      Sex

	BirthDate string // YYYY-MM-DD opcional
	Microchip string

	Caregiver Caregiver
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
