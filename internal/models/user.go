package models

import "time"

// Roles a user may hold.
const (
	RoleClient = "CLIENT"
	RoleSeller = "SELLER"
	RoleAdmin  = "ADMIN"
)

// User represents a customer or staff member of the store.
type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string     `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	RUN       string     `json:"run" gorm:"column:run;uniqueIndex;type:varchar(20);not null"`
	FirstName string     `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName  string     `json:"last_name" gorm:"type:varchar(100)"`
	Password  string     `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	Role      string     `json:"role" gorm:"type:varchar(20);not null;index"`
	Region    string     `json:"region,omitempty" gorm:"type:varchar(100)"`
	Comuna    string     `json:"comuna,omitempty" gorm:"type:varchar(100)"`
	Address   string     `json:"address,omitempty" gorm:"type:varchar(255)"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
