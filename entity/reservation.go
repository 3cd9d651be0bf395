package entity

import (
	"gorm.io/gorm"
)

// 予約ステータス
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// 時間枠（1日2枠固定）
const (
	SlotMorning   = "am" // 10:00〜11:30
	SlotAfternoon = "pm" // 14:00〜15:30
)

type Reservation struct {
	gorm.Model
	Date         string  `gorm:"size:10;not null;index" json:"date"` // YYYY-MM-DD
	TimeSlot     string  `gorm:"size:2;not null" json:"timeSlot"`    // am | pm
	Name         string  `gorm:"not null" json:"name"`
	Furigana     string  `gorm:"not null" json:"furigana"`
	Email        string  `gorm:"not null" json:"email"`
	Phone        string  `gorm:"not null" json:"phone"`
	Relationship *string `json:"relationship"` // self/family/caremgr/medical/other
	Participants int     `gorm:"not null" json:"participants"`
	Message      *string `json:"message"`
	Status       string  `gorm:"not null;default:pending;index" json:"status"`
	UID          *uint   `json:"uid"` // ログインユーザーとの紐付け（匿名はnull）
}
