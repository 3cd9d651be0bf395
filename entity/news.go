package entity

import (
	"gorm.io/gorm"
)

// 画像レイアウト
const (
	LayoutSingle = "single"
	LayoutGrid2  = "grid-2"
	LayoutGrid3  = "grid-3"
	LayoutSlider = "slider"
)

// NewsCategories は公開側の絞り込みに使う4カテゴリ。
var NewsCategories = []string{"お知らせ", "イベント", "採用", "メディア"}

type News struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	Category    string `gorm:"not null" json:"category"`
	Summary     string `json:"summary"`
	Content     string `gorm:"type:text" json:"content"`
	ImageLayout string `gorm:"not null;default:single" json:"imageLayout"`
	Date        string `gorm:"size:10" json:"date"` // 表示用 "2026.01.08"
	Published   bool   `gorm:"not null;default:false;index" json:"published"`
	MemberOnly  bool   `gorm:"not null;default:false" json:"memberOnly"`

	Images []NewsImage `gorm:"foreignKey:NewsID;constraint:OnDelete:CASCADE" json:"images"`
}

type NewsImage struct {
	gorm.Model
	NewsID   uint   `gorm:"not null;index" json:"-"`
	URL      string `gorm:"not null" json:"url"`
	Alt      string `json:"alt"`
	Caption  string `json:"caption"`
	Position int    `gorm:"not null;default:0" json:"-"` // 表示順
}
