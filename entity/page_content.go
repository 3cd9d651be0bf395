package entity

import (
	"gorm.io/gorm"
)

// PageContent はページ内テキストの上書き1件。(pageId, contentKey) ごとに
// 高々1行で、行が無ければクライアント側のデフォルト文言が使われる。
type PageContent struct {
	gorm.Model
	PageID     string `gorm:"size:64;not null;uniqueIndex:idx_page_key" json:"pageId"`
	ContentKey string `gorm:"size:128;not null;uniqueIndex:idx_page_key" json:"contentKey"`
	Value      string `gorm:"type:text;not null" json:"value"`
	UpdatedBy  uint   `json:"updatedBy"` // 編集した管理者のユーザーID
}
