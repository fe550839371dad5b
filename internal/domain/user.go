package domain

// Role determines which authorization branch applies to an identity.
type Role string

// List of possible roles
const (
	RoleAdmin   Role = "admin"
	RoleCourier Role = "courier"
)

var allowedRoles = [...]Role{RoleAdmin, RoleCourier}

// Valid checks if the Role is valid
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// User represents an authenticated actor, either admin or courier.
type User struct {
	ID           int64
	Name         string
	Username     string
	PasswordHash string
	Role         Role
	// Companies is the courier's authorized company scope. Always sorted
	// and deduplicated; empty for admins and for couriers without scope.
	Companies []Company
}

// HasCompany reports whether the user's scope contains c.
func (u *User) HasCompany(c Company) bool {
	for _, v := range u.Companies {
		if v == c {
			return true
		}
	}
	return false
}
