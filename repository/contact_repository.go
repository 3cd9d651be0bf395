package repository

import (
	"time"

	"github.com/shostako/yasuragi-no-sato/entity"
	"gorm.io/gorm"
)

type ContactRepository struct {
	DB *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(ct *entity.Contact) error {
	return r.DB.Create(ct).Error
}

func (r *ContactRepository) Get(id uint) (*entity.Contact, error) {
	var ct entity.Contact
	if err := r.DB.First(&ct, id).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *ContactRepository) List(status string) ([]entity.Contact, error) {
	var out []entity.Contact
	db := r.DB.Order("created_at DESC")
	if status != "" && status != "all" {
		db = db.Where("status = ?", status)
	}
	err := db.Find(&out).Error
	return out, err
}

type ContactSummary struct {
	ID          uint      `json:"id"`
	InquiryType string    `json:"inquiryType"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r *ContactRepository) ListForUser(uid uint) ([]ContactSummary, error) {
	var out []ContactSummary
	err := r.DB.Model(&entity.Contact{}).
		Select("id, inquiry_type, message, status, created_at").
		Where("uid = ?", uid).
		Order("created_at DESC").
		Scan(&out).Error
	return out, err
}

// ステータスは new / in_progress / done を行き来できる（管理者のみ）
func (r *ContactRepository) UpdateStatus(id uint, status string) error {
	return r.DB.Model(&entity.Contact{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *ContactRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&entity.Contact{}, id).Error
}
