package repository

import (
	"github.com/shostako/yasuragi-no-sato/entity"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) Get(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdateDisplayName(id uint, name string) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).
		Update("display_name", name).Error
}

// PromoteToAdmin は一度きりのセットアップ経路からのみ呼ばれる
func (r *UserRepository) PromoteToAdmin(id uint) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).
		Update("role", "admin").Error
}
