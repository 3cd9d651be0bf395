package entity

import (
	"gorm.io/gorm"
)

// お問い合わせステータス
const (
	ContactNew        = "new"
	ContactInProgress = "in_progress"
	ContactDone       = "done"
)

type Contact struct {
	gorm.Model
	InquiryType  string  `gorm:"not null" json:"inquiryType"` // visit/service/price/recruit/other
	Name         string  `gorm:"not null" json:"name"`
	Furigana     string  `gorm:"not null" json:"furigana"`
	Email        string  `gorm:"not null" json:"email"`
	Phone        string  `gorm:"not null" json:"phone"`
	Relationship *string `json:"relationship"`
	Message      string  `gorm:"type:text;not null" json:"message"`
	Status       string  `gorm:"not null;default:new;index" json:"status"`
	UID          *uint   `json:"uid"`
}
