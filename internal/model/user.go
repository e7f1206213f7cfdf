package model

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  FullName     – display name shown by the shell after login.
//  Role         – either RoleAdmin or RoleUser.
type User struct {
    ID           int64  // users.id
    Username     string // users.username
    PasswordHash string // users.password
    FullName     string // users.full_name
    Role         string // users.role
}

// Role values accepted in users.role. Administrators additionally get
// the user-creation action in the shell; everything else behaves the
// same for both roles.
const (
    RoleAdmin = "admin"
    RoleUser  = "user"
)

// ValidRole reports whether r is one of the accepted role values.
func ValidRole(r string) bool {
    return r == RoleAdmin || r == RoleUser
}
