package services

import (
	"testing"

	"github.com/shostako/yasuragi-no-sato/entity"
	"github.com/shostako/yasuragi-no-sato/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newPageContentService(t *testing.T) *PageContentService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.PageContent{}))
	return NewPageContentService(repository.NewPageContentRepository(db))
}

func TestPageContentDefaults(t *testing.T) {
	s := newPageContentService(t)

	// 上書きが無ければマップは空＝クライアントはデフォルト文言を出す
	contents, err := s.Contents("home")
	require.NoError(t, err)
	assert.Empty(t, contents)
}

func TestUpdateContent(t *testing.T) {
	s := newPageContentService(t)
	const editor = uint(1)

	result, err := s.UpdateContent("home", "hero.title", "New Title", editor)
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.Equal(t, "New Title", result.Value)

	contents, err := s.Contents("home")
	require.NoError(t, err)
	assert.Equal(t, "New Title", contents["hero.title"])

	// 他キー・他ページには触れない
	other, err := s.Contents("about")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestUpdateContentSkipsEmpty(t *testing.T) {
	s := newPageContentService(t)

	_, err := s.UpdateContent("home", "hero.title", "Title", 1)
	require.NoError(t, err)

	// 空文字（空白のみ含む）は書かず、既存値が生きる
	result, err := s.UpdateContent("home", "hero.title", "   ", 1)
	require.NoError(t, err)
	assert.False(t, result.Written)
	assert.Equal(t, "Title", result.Value)

	contents, err := s.Contents("home")
	require.NoError(t, err)
	assert.Equal(t, "Title", contents["hero.title"])
}

func TestUpdateContentSkipsUnchanged(t *testing.T) {
	s := newPageContentService(t)

	r1, err := s.UpdateContent("home", "hero.title", "Title", 1)
	require.NoError(t, err)
	assert.True(t, r1.Written)

	// 同じ値の再コミットは書き込みなし
	r2, err := s.UpdateContent("home", "hero.title", "Title", 1)
	require.NoError(t, err)
	assert.False(t, r2.Written)
	assert.Equal(t, "Title", r2.Value)
}

func TestUpdateContentMergesSingleKey(t *testing.T) {
	s := newPageContentService(t)

	_, err := s.UpdateContent("home", "hero.title", "Title", 1)
	require.NoError(t, err)
	_, err = s.UpdateContent("home", "hero.subtitle", "Sub", 2)
	require.NoError(t, err)

	// 上書き（1キーだけ変える）
	r, err := s.UpdateContent("home", "hero.title", "Newer", 2)
	require.NoError(t, err)
	assert.True(t, r.Written)

	contents, err := s.Contents("home")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"hero.title":    "Newer",
		"hero.subtitle": "Sub",
	}, contents)
}
