//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// Profile is the editable account record behind /user/profile.
type Profile struct {
	ID         int64    `json:"id,omitempty"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Username   string   `json:"username,omitempty"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone,omitempty"`
	Department string   `json:"department,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Roles      []string `json:"roles,omitempty"`
}

// ProfileUpdate is the body of a profile update.
type ProfileUpdate struct {
	FirstName  string `json:"firstName"            validate:"required"`
	LastName   string `json:"lastName"             validate:"required"`
	Email      string `json:"email"                validate:"required,email"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
	Bio        string `json:"bio,omitempty"`
}
