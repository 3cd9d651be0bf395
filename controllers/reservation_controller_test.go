package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shostako/yasuragi-no-sato/configs"
	"github.com/shostako/yasuragi-no-sato/entity"
	"github.com/shostako/yasuragi-no-sato/middlewares"
	"github.com/shostako/yasuragi-no-sato/repository"
	"github.com/shostako/yasuragi-no-sato/services"
	"github.com/shostako/yasuragi-no-sato/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *configs.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Reservation{}, &entity.BookedSlot{},
		&entity.PageContent{},
	))

	cfg := &configs.Config{JWTSecret: "test-secret", JWTTTL: time.Hour}

	resvRepo := repository.NewReservationRepository(db)
	resvSvc := services.NewReservationService(db, resvRepo)
	notifySvc := services.NewNotifyService(cfg) // SMTP未設定 → 通知はスキップされる
	resvCtrl := NewReservationController(resvSvc, resvRepo, notifySvc, nil)

	pageSvc := services.NewPageContentService(repository.NewPageContentRepository(db))
	pageCtrl := NewPageContentController(pageSvc)

	r := gin.New()
	r.POST("/reservations", middlewares.OptionalAuth(cfg.JWTSecret), resvCtrl.Create)
	r.GET("/reservations/calendar", resvCtrl.Calendar)
	r.PUT("/admin/pages/:pageId/contents/:key",
		middlewares.AuthMiddleware(cfg.JWTSecret, "admin"), pageCtrl.Update)

	return r, db, cfg
}

func postJSON(r *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validBody() gin.H {
	return gin.H{
		"date": "2026-02-10", "timeSlot": "am",
		"name": "山田 太郎", "furigana": "ヤマダ タロウ",
		"email": "taro@example.com", "phone": "090-1234-5678",
		"participants": 2, "privacy": true,
	}
}

func TestCreateReservationEndpoint(t *testing.T) {
	r, db, _ := setupRouter(t)

	w := postJSON(r, "/reservations", validBody(), nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		OK   bool `json:"ok"`
		Data struct {
			Status       string `json:"status"`
			Participants int    `json:"participants"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, "pending", body.Data.Status)
	assert.Equal(t, 2, body.Data.Participants)

	var n int64
	db.Model(&entity.Reservation{}).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestCreateReservationValidationBlocksWrite(t *testing.T) {
	r, db, _ := setupRouter(t)

	cases := []func(gin.H){
		func(b gin.H) { b["name"] = "" },
		func(b gin.H) { b["email"] = "not-an-email" },
		func(b gin.H) { b["participants"] = 6 },
		func(b gin.H) { b["privacy"] = false },
		func(b gin.H) { b["date"] = "" },
	}

	for _, mutate := range cases {
		body := validBody()
		mutate(body)
		w := postJSON(r, "/reservations", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var out struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.NotEmpty(t, out.Errors)
	}

	// 1件も書かれていない
	var n int64
	db.Model(&entity.Reservation{}).Count(&n)
	assert.EqualValues(t, 0, n)
}

func TestCalendarEndpoint(t *testing.T) {
	r, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/reservations/calendar?year=2026&month=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/reservations/calendar?year=2026&month=13", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func putContent(r *gin.Engine, token, value string) *httptest.ResponseRecorder {
	b, _ := json.Marshal(gin.H{"value": value})
	req := httptest.NewRequest(http.MethodPut, "/admin/pages/home/contents/hero.title", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPageContentUpdateRequiresEditMode(t *testing.T) {
	r, _, cfg := setupRouter(t)

	// role=admin でも編集モードOFFのトークンでは書けない
	plain, err := utils.GenerateToken(1, "admin", false, cfg.JWTSecret, cfg.JWTTTL)
	require.NoError(t, err)
	w := putContent(r, plain, "New Title")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 編集モードONなら書ける
	editing, err := utils.GenerateToken(1, "admin", true, cfg.JWTSecret, cfg.JWTTTL)
	require.NoError(t, err)
	w = putContent(r, editing, "New Title")
	assert.Equal(t, http.StatusOK, w.Code)

	// member は editMode=true を要求してもトークン自体がeditMode無しで発行される
	memberTok, err := utils.GenerateToken(2, "member", true, cfg.JWTSecret, cfg.JWTTTL)
	require.NoError(t, err)
	w = putContent(r, memberTok, "hack")
	assert.Equal(t, http.StatusForbidden, w.Code) // roleガードで弾かれる
}
