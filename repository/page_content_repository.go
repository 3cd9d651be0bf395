package repository

import (
	"errors"

	"github.com/shostako/yasuragi-no-sato/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PageContentRepository struct {
	DB *gorm.DB
}

func NewPageContentRepository(db *gorm.DB) *PageContentRepository {
	return &PageContentRepository{DB: db}
}

// GetContents はページ1枚分の上書きマップ。行が無いキーはクライアント側の
// デフォルト文言が生きる
func (r *PageContentRepository) GetContents(pageID string) (map[string]string, error) {
	var rows []entity.PageContent
	if err := r.DB.Where("page_id = ?", pageID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := map[string]string{}
	for _, row := range rows {
		out[row.ContentKey] = row.Value
	}
	return out, nil
}

// GetValue は単一キーの現在値。未設定なら ok=false
func (r *PageContentRepository) GetValue(pageID, key string) (string, bool, error) {
	var row entity.PageContent
	err := r.DB.Where("page_id = ? AND content_key = ?", pageID, key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

// Upsert は1キーだけをマージする（他キーには触れない）
func (r *PageContentRepository) Upsert(pageID, key, value string, updatedBy uint) error {
	row := entity.PageContent{
		PageID:     pageID,
		ContentKey: key,
		Value:      value,
		UpdatedBy:  updatedBy,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "page_id"}, {Name: "content_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
	}).Create(&row).Error
}
