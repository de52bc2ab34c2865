package model

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  FirstName    – given name shown on reservations.
//  LastName     – family name shown on reservations.
//  Phone        – contact phone number.
//  Role         – account role ("client" or "admin").
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64 // users.id
	Email        string // users.email
	PasswordHash string // users.password
	FirstName    string // users.firstName
	LastName     string // users.lastName
	Phone        string // users.phone
	Role         string // users.role
	CreatedAt    string // users.createdAt
	UpdatedAt    string // users.updatedAt
}

// Roles recognized by the application. Signup always assigns
// RoleClient; RoleAdmin accounts are seeded at initialization.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)
