package models

import (
	"gorm.io/gorm"
)

// Pet is a read-only collaborator record: bookings may reference one by id, but the
// reservation engine never creates or mutates pets.
type Pet struct {
	gorm.Model

	CustomerID *uint  `gorm:"index;column:customer_id" json:"customer_id,omitempty"`
	Name       string `json:"name"`
	Species    string `gorm:"size:32" json:"species"`

	Customer Customer `gorm:"foreignKey:CustomerID;references:ID" json:"-"`
}
