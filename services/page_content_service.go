package services

import (
	"strings"

	"github.com/shostako/yasuragi-no-sato/repository"
)

// PageContentService は公開ページのインライン編集で使う文言上書き。
// 表示値 = 上書きがあればその値、無ければクライアント埋め込みのデフォルト。
// 空文字の上書きは存在しない（空なら書かない）ので表示が空白になることはない
type PageContentService struct {
	Repo *repository.PageContentRepository
}

func NewPageContentService(repo *repository.PageContentRepository) *PageContentService {
	return &PageContentService{Repo: repo}
}

func (s *PageContentService) Contents(pageID string) (map[string]string, error) {
	return s.Repo.GetContents(pageID)
}

// UpdateResult には確定後の永続値を必ず入れて返す。書き込みが失敗・スキップ
// された場合、クライアントは楽観更新した表示をこの値まで巻き戻す
type UpdateResult struct {
	Written bool   `json:"written"`
	Value   string `json:"value"` // 現在永続化されている値（未設定なら空）
}

// UpdateContent は1キーだけをマージ書き込みする。
//   - 空文字（トリム後）は書かない
//   - 現在の永続値と同じなら書かない
func (s *PageContentService) UpdateContent(pageID, key, value string, editorID uint) (*UpdateResult, error) {
	newValue := strings.TrimSpace(value)

	current, exists, err := s.Repo.GetValue(pageID, key)
	if err != nil {
		return nil, err
	}

	if newValue == "" {
		return &UpdateResult{Written: false, Value: current}, nil
	}
	if exists && newValue == current {
		return &UpdateResult{Written: false, Value: current}, nil
	}

	if err := s.Repo.Upsert(pageID, key, newValue, editorID); err != nil {
		// 失敗時は最後に永続化された値を添えて返せない（呼び出し側が
		// Contents を取り直してロールバックする）
		return nil, err
	}
	return &UpdateResult{Written: true, Value: newValue}, nil
}
