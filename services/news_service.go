package services

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/shostako/yasuragi-no-sato/entity"
	"github.com/shostako/yasuragi-no-sato/repository"
	"github.com/shostako/yasuragi-no-sato/utils"
	"gorm.io/gorm"
)

type NewsService struct {
	DB        *gorm.DB
	Repo      *repository.NewsRepository
	UploadDir string
	BaseURL   string
}

func NewNewsService(db *gorm.DB, repo *repository.NewsRepository, uploadDir, baseURL string) *NewsService {
	return &NewsService{DB: db, Repo: repo, UploadDir: uploadDir, BaseURL: baseURL}
}

// ----- DTOs from Controller -----

type NewsImageIn struct {
	URL     string `json:"url"` // 既存URL か data:...;base64 の新規入稿
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

type NewsIn struct {
	Title       string        `json:"title"`
	Category    string        `json:"category"`
	Summary     string        `json:"summary"`
	Content     string        `json:"content"`
	Images      []NewsImageIn `json:"images"`
	ImageLayout string        `json:"imageLayout"`
	Date        string        `json:"date"` // "2026.01.08"
	Published   bool          `json:"published"`
	MemberOnly  bool          `json:"memberOnly"`
}

var ErrTitleRequired = errors.New("タイトルを入力してください")

func validCategory(c string) bool {
	for _, v := range entity.NewsCategories {
		if v == c {
			return true
		}
	}
	return false
}

// 入稿画像を確定させる。base64はディスクに書いてURL化、既存URLはそのまま
func (s *NewsService) storeImages(in []NewsImageIn) ([]entity.NewsImage, error) {
	out := make([]entity.NewsImage, 0, len(in))
	for i, img := range in {
		url := img.URL
		if strings.HasPrefix(url, "data:") {
			saved, err := utils.SaveBase64Image(url, filepath.Join(s.UploadDir, "news"))
			if err != nil {
				return nil, err
			}
			url = saved
		}
		out = append(out, entity.NewsImage{
			URL:      url,
			Alt:      img.Alt,
			Caption:  img.Caption,
			Position: i,
		})
	}
	return out, nil
}

func (s *NewsService) Create(in *NewsIn) (*entity.News, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	if !validCategory(in.Category) {
		in.Category = entity.NewsCategories[0]
	}
	if in.ImageLayout == "" {
		in.ImageLayout = entity.LayoutSingle
	}
	if in.Date == "" {
		in.Date = time.Now().Format("2006.01.02")
	}

	images, err := s.storeImages(in.Images)
	if err != nil {
		return nil, err
	}

	n := &entity.News{
		Title:       in.Title,
		Category:    in.Category,
		Summary:     in.Summary,
		Content:     in.Content,
		ImageLayout: in.ImageLayout,
		Date:        in.Date,
		Published:   in.Published,
		MemberOnly:  in.MemberOnly,
		Images:      images,
	}
	if err := s.Repo.Create(s.DB, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NewsService) Update(id uint, in *NewsIn) (*entity.News, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}

	n, err := s.Repo.Get(id)
	if err != nil {
		return nil, err
	}

	images, err := s.storeImages(in.Images)
	if err != nil {
		return nil, err
	}

	n.Title = in.Title
	if validCategory(in.Category) {
		n.Category = in.Category
	}
	n.Summary = in.Summary
	n.Content = in.Content
	if in.ImageLayout != "" {
		n.ImageLayout = in.ImageLayout
	}
	if in.Date != "" {
		n.Date = in.Date
	}
	n.Published = in.Published
	n.MemberOnly = in.MemberOnly

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		n.Images = nil
		if err := s.Repo.Save(tx, n); err != nil {
			return err
		}
		return s.Repo.ReplaceImages(tx, n.ID, images)
	})
	if err != nil {
		return nil, err
	}
	n.Images = images
	return n, nil
}

func (s *NewsService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Delete(tx, id)
	})
}

// Feed は公開記事（会員限定を除く）のRSS
func (s *NewsService) Feed() (string, error) {
	items, err := s.Repo.ListPublished("", false)
	if err != nil {
		return "", err
	}

	feed := &feeds.Feed{
		Title:       "やすらぎの郷 お知らせ",
		Link:        &feeds.Link{Href: s.BaseURL + "/news"},
		Description: "介護施設やすらぎの郷からのお知らせ・イベント情報",
		Created:     time.Now(),
	}

	for _, n := range items {
		created := n.CreatedAt
		if t, err := time.Parse("2006.01.02", n.Date); err == nil {
			created = t
		}
		link := s.BaseURL + "/news/" + strconv.FormatUint(uint64(n.ID), 10)
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          link,
			Title:       n.Title,
			Link:        &feeds.Link{Href: link},
			Description: n.Summary,
			Created:     created,
		})
	}

	return feed.ToRss()
}
