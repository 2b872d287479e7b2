package models

import "gorm.io/gorm"

const (
	RoleAdmin  = "ADMIN"
	RoleSeller = "SELLER"
	RoleBuyer  = "BUYER"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Name     string `json:"name"`
	Password string `json:"-"`
	Role     string `gorm:"default:BUYER" json:"role"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Avatar   string `json:"avatar"`
	Active   bool   `gorm:"default:true" json:"active"`
}

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleSeller || r == RoleBuyer
}
