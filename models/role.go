package models

// UserRole задаёт роль владельца токена доступа. Учётных записей в системе нет,
// роль живёт только в JWT-клеймах.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleReferee UserRole = "referee"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleReferee
}
