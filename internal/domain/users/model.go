package users

import "time"

// Role de la cuenta; define qué ve y qué puede editar en la app.
// @Enum admin, trainer, guide_dog_user, puppy_raiser, adopter, breeding_caretaker, veterinarian
type Role string

const (
	RoleAdmin             Role = "admin"
	RoleTrainer           Role = "trainer"
	RoleGuideDogUser      Role = "guide_dog_user"
	RolePuppyRaiser       Role = "puppy_raiser"
	RoleAdopter           Role = "adopter"
	RoleBreedingCaretaker Role = "breeding_caretaker"
	RoleVeterinarian      Role = "veterinarian"
)

var Roles = []Role{
	RoleAdmin,
	RoleTrainer,
	RoleGuideDogUser,
	RolePuppyRaiser,
	RoleAdopter,
	RoleBreedingCaretaker,
	RoleVeterinarian,
}

func (r Role) Valid() bool {
	for _, k := range Roles {
		if r == k {
			return true
		}
	}
	return false
}

// User es la cuenta de login. El ID lo elige el admin y es único.
type User struct {
	ID   string
	Role Role
	Name string

	// DogName vincula la cuenta con el perro que cuida (opcional).
	DogName string

	// PasswordHash es bcrypt; nunca se devuelve por la API.
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}
