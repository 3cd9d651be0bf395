package repository

import (
	"github.com/shostako/yasuragi-no-sato/entity"
	"gorm.io/gorm"
)

type NewsRepository struct {
	DB *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{DB: db}
}

func (r *NewsRepository) Create(tx *gorm.DB, n *entity.News) error {
	return tx.Create(n).Error
}

func (r *NewsRepository) Get(id uint) (*entity.News, error) {
	var n entity.News
	if err := r.DB.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// 公開側の一覧。memberOnlyの記事はログイン済みのときだけ混ぜる
func (r *NewsRepository) ListPublished(category string, includeMemberOnly bool) ([]entity.News, error) {
	var out []entity.News
	db := r.DB.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("published = ?", true)
	if !includeMemberOnly {
		db = db.Where("member_only = ?", false)
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}
	err := db.Order("date DESC, created_at DESC").Find(&out).Error
	return out, err
}

// 管理側の一覧。下書きも含めて全件
func (r *NewsRepository) ListAll() ([]entity.News, error) {
	var out []entity.News
	err := r.DB.Preload("Images").Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *NewsRepository) Save(tx *gorm.DB, n *entity.News) error {
	return tx.Save(n).Error
}

func (r *NewsRepository) ReplaceImages(tx *gorm.DB, newsID uint, images []entity.NewsImage) error {
	if err := tx.Unscoped().Where("news_id = ?", newsID).Delete(&entity.NewsImage{}).Error; err != nil {
		return err
	}
	for i := range images {
		images[i].NewsID = newsID
		images[i].Position = i
		if err := tx.Create(&images[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *NewsRepository) Delete(tx *gorm.DB, id uint) error {
	if err := tx.Unscoped().Where("news_id = ?", id).Delete(&entity.NewsImage{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&entity.News{}, id).Error
}
