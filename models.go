package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole string

const (
	// RoleStandard is the default role assigned at registration
	RoleStandard UserRole = "standard"
	// RoleAdmin grants access to admin gated routes
	RoleAdmin UserRole = "admin"
)

// Address is the structured address sub record persisted with each user
type Address struct {
	State   string `bun:"state" json:"state"`
	City    string `bun:"city" json:"city"`
	Street  string `bun:"street" json:"street"`
	Pincode string `bun:"pincode" json:"pincode"`
}

// User is the user model. The password is only ever stored as a bcrypt
// hash; the plaintext never touches this struct.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"role,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone         string     `bun:"phone_number" json:"phone,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	Address       Address    `bun:"embed:address_" json:"address"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// PublicUser is the response view of a user record. It carries no
// credential material.
type PublicUser struct {
	ID      string   `json:"_id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address Address  `json:"address"`
	Role    UserRole `json:"role"`
}

// Public returns the view of the user that is safe to serialize in
// responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:      u.ID.String(),
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		Role:    u.Role,
	}
}

// IsAdmin reports whether the record carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Identity adapts the record to the Identity interface used by the token
// and login services.
func (u *User) Identity() Identity {
	return authIdentity{
		id:    u.ID.String(),
		name:  u.Name,
		email: u.Email,
		role:  string(u.Role),
	}
}

type authIdentity struct {
	id    string
	name  string
	email string
	role  string
}

func (a authIdentity) ID() string    { return a.id }
func (a authIdentity) Name() string  { return a.name }
func (a authIdentity) Email() string { return a.email }
func (a authIdentity) Role() string  { return a.role }

var _ Identity = authIdentity{}
