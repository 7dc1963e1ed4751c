// Package directory provides GORM-backed implementations of the credential
// and reference-data boundaries: actor verification, department lookups, and
// role lookups. User, department, and role records are owned by the identity
// side of the system; the tracking core only reads them.
package directory

import (
	"time"

	"github.com/google/uuid"
)

// UserDTO represents the database structure of an actor account.
// PasswordHash holds a bcrypt hash and never leaves this package.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// DepartmentDTO represents the database structure of a production department.
type DepartmentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for department entities.
func (DepartmentDTO) TableName() string {
	return "departments"
}

// RoleDTO represents the database structure of an access role.
type RoleDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for role entities.
func (RoleDTO) TableName() string {
	return "roles"
}
