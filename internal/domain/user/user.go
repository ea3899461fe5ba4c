// Package user holds agency staff accounts and their roles.
package user

import (
	"slices"
	"time"
)

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
)

var validRoles = map[Role]bool{RoleSuperAdmin: true, RoleAdmin: true, RoleUser: true}

func (r Role) IsValid() bool { return validRoles[r] }

// IsAdmin is true for admins and super admins.
func (r Role) IsAdmin() bool { return r == RoleAdmin || r == RoleSuperAdmin }

func (r Role) IsSuperAdmin() bool { return r == RoleSuperAdmin }

type Department string

const (
	DepartmentMarketing   Department = "marketing"
	DepartmentContent     Department = "content"
	DepartmentDesign      Department = "design"
	DepartmentDevelopment Department = "development"
	DepartmentSEO         Department = "seo"
	DepartmentSocial      Department = "social"
)

var validDepartments = map[Department]bool{
	DepartmentMarketing:   true,
	DepartmentContent:     true,
	DepartmentDesign:      true,
	DepartmentDevelopment: true,
	DepartmentSEO:         true,
	DepartmentSocial:      true,
}

func (d Department) IsValid() bool { return validDepartments[d] }

// User is an agency staff member.
type User struct {
	ID         string     `json:"id" yaml:"id"`
	Username   string     `json:"username" yaml:"username"`
	Email      string     `json:"email" yaml:"email"`
	Role       Role       `json:"role" yaml:"role"`
	Department Department `json:"department" yaml:"department"`
	BrandIDs   []string   `json:"brandIds" yaml:"brandIds"`
	CreatedAt  time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt" yaml:"updatedAt"`
}

// ManagesBrand reports whether brandID is among the user's brands.
func (u User) ManagesBrand(brandID string) bool {
	return slices.Contains(u.BrandIDs, brandID)
}

// Clone returns a copy that shares no slices with u.
func (u User) Clone() User {
	u.BrandIDs = slices.Clone(u.BrandIDs)
	return u
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Username   *string     `json:"username,omitempty" validate:"omitempty,min=2"`
	Email      *string     `json:"email,omitempty" validate:"omitempty,email"`
	Role       *Role       `json:"role,omitempty" validate:"omitempty,user_role"`
	Department *Department `json:"department,omitempty" validate:"omitempty,department"`
	BrandIDs   *[]string   `json:"brandIds,omitempty"`
}

// Apply copies the set fields of p onto u.
func (p Patch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.BrandIDs != nil {
		u.BrandIDs = slices.Clone(*p.BrandIDs)
	}
}
