// models/customer.go
package models

import (
	"gorm.io/gorm"
)

type Customer struct {
	gorm.Model

	FullName string `json:"fullName"`
	// Phone is the lookup key for owner identity resolution; unique at the DB level.
	Phone    string `gorm:"uniqueIndex;size:32" json:"phone"`
	Email    string `json:"email"`
	Username string `gorm:"size:150" json:"username,omitempty"`
	Password string `gorm:"size:255" json:"-"` // store hashed password, never return in JSON

	// WalkIn marks accounts provisioned at the desk with a generated, non-loginable credential.
	WalkIn bool `gorm:"column:walk_in;default:false" json:"walkIn"`
}
