package directory

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDepartmentDirectory implements DepartmentDirectory against the
// departments table.
type GormDepartmentDirectory struct {
	db *gorm.DB
}

// NewGormDepartmentDirectory creates a new GORM department directory.
func NewGormDepartmentDirectory(db *gorm.DB) *GormDepartmentDirectory {
	return &GormDepartmentDirectory{db: db}
}

// Lookup returns the department or an ObjectNotFound error.
func (d *GormDepartmentDirectory) Lookup(ctx context.Context, id kernel.UUID) (ports.Department, error) {
	if err := id.Validate(); err != nil {
		return ports.Department{}, err
	}

	var dto DepartmentDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Department{}, errs.NewObjectNotFoundError("departmentId", id.String())
		}
		return ports.Department{}, err
	}

	departmentID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Department{}, err
	}

	return ports.Department{ID: departmentID, Name: dto.Name}, nil
}

// GormRoleDirectory implements RoleDirectory against the roles table.
type GormRoleDirectory struct {
	db *gorm.DB
}

// NewGormRoleDirectory creates a new GORM role directory.
func NewGormRoleDirectory(db *gorm.DB) *GormRoleDirectory {
	return &GormRoleDirectory{db: db}
}

// LookupByIDs returns the roles whose ids matched. Missing ids are simply
// absent from the result.
func (d *GormRoleDirectory) LookupByIDs(ctx context.Context, ids []kernel.UUID) ([]ports.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]any, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []RoleDTO
	if err := d.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toRoles(dtos)
}

// LookupByNames returns the roles whose names matched. Missing names are
// simply absent from the result.
func (d *GormRoleDirectory) LookupByNames(ctx context.Context, names []string) ([]ports.Role, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var dtos []RoleDTO
	if err := d.db.WithContext(ctx).Where("name IN ?", names).Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toRoles(dtos)
}

func toRoles(dtos []RoleDTO) ([]ports.Role, error) {
	roles := make([]ports.Role, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		roles = append(roles, ports.Role{ID: id, Name: dto.Name})
	}
	return roles, nil
}
