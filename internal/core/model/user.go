package model

import "time"

// Role is the authorization role of a user.
type Role string

const (
	RolePlatformAdmin Role = "PLATFORM_ADMIN"
	RoleCompanyAdmin  Role = "COMPANY_ADMIN"
	RoleCompanyStaff  Role = "COMPANY_STAFF"
	RoleSpeaker       Role = "SPEAKER"
	RoleViewer        Role = "VIEWER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RolePlatformAdmin, RoleCompanyAdmin, RoleCompanyStaff, RoleSpeaker, RoleViewer:
		return true
	}
	return false
}

// CompanyScoped reports whether users with the role must belong to a company.
func (r Role) CompanyScoped() bool {
	return r == RoleCompanyAdmin || r == RoleCompanyStaff
}

// User is an account able to authenticate against the platform.
type User struct {
	Base

	// Email is the login, stored normalized. Unique among non-deleted users.
	Email string `json:"email"`

	// PasswordHash is the argon2id hash of the password. Never serialized.
	PasswordHash string `json:"-"`

	// Role is the authorization role.
	Role Role `json:"role"`

	// PersonID references the person behind the account.
	PersonID string `json:"personId"`

	// CompanyID references the tenant of the account. Empty for platform-wide users.
	CompanyID string `json:"companyId,omitempty"`

	// LastLoginAt is the time of the last successful login.
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// User attribute names.
const (
	UserEmail        = "email"
	UserPasswordHash = "password_hash"
	UserRole         = "role"
	UserPersonID     = "person_id"
	UserCompanyID    = "company_id"
	UserLastLoginAt  = "last_login_at"
)
