package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Username    string     `json:"username" db:"username" example:"asiddiqui"`               // Unique login name
	Email       string     `json:"email" db:"email" example:"asiddiqui@institute.example"`   // User's email address
	Password    string     `json:"-" db:"password"`                                          // Hashed password (excluded from JSON)
	FirstName   string     `json:"firstName" db:"first_name" example:"Ayesha"`               // User's first name
	LastName    string     `json:"lastName" db:"last_name" example:"Siddiqui"`               // User's last name
	Phone       string     `json:"phone" db:"phone" example:"+91 98200 12345"`               // Contact number
	Address     string     `json:"address,omitempty" db:"address"`                           // Postal address
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"STAFF"`                  // ADMIN, STAFF, TRAINER or STUDENT
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                   // Whether the account is active
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Creation timestamp
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Last update timestamp
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                 // Timestamp of the last login (nullable)
}

// FullName returns "First Last" for display and exports.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
