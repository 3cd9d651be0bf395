package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	DisplayName string `json:"displayName"`
	Role        string `gorm:"not null;default:member" json:"role"` // member | admin

	Reservations []Reservation `gorm:"foreignKey:UID" json:"-"`
	Contacts     []Contact     `gorm:"foreignKey:UID" json:"-"`
}
