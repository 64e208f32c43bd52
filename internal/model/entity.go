package model

// Entity is an organizational unit capable of holding courriers.
// It is owned by the directory; the workflow only references it by id.
type Entity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MainUser    *User  `json:"mainUser,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// User is a staff member belonging to an entity.
type User struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email,omitempty"`
	EntityID  string `json:"entityId,omitempty"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	switch {
	case u.Firstname == "":
		return u.Lastname
	case u.Lastname == "":
		return u.Firstname
	}
	return u.Firstname + " " + u.Lastname
}
