package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shostako/yasuragi-no-sato/pkg/resp"
	"github.com/shostako/yasuragi-no-sato/repository"
	"github.com/shostako/yasuragi-no-sato/services"
	"gorm.io/gorm"
)

type NewsController struct {
	service *services.NewsService
	repo    *repository.NewsRepository
}

func NewNewsController(service *services.NewsService, repo *repository.NewsRepository) *NewsController {
	return &NewsController{service: service, repo: repo}
}

// GET /news?category=　公開記事のみ。会員限定はログイン済みのときだけ
func (nc *NewsController) List(c *gin.Context) {
	_, loggedIn := c.Get("userId")
	items, err := nc.repo.ListPublished(c.Query("category"), loggedIn)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /news/:id　非公開・会員限定（未ログイン）は404で隠す
func (nc *NewsController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	n, err := nc.repo.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	_, loggedIn := c.Get("userId")
	if !n.Published || (n.MemberOnly && !loggedIn) {
		resp.NotFound(c, "not found")
		return
	}
	resp.OK(c, n)
}

// GET /news/feed　RSS
func (nc *NewsController) Feed(c *gin.Context) {
	rss, err := nc.service.Feed()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

// GET /admin/news　下書き含む全件
func (nc *NewsController) AdminList(c *gin.Context) {
	items, err := nc.repo.ListAll()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /admin/news
func (nc *NewsController) Create(c *gin.Context) {
	var in services.NewsIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	n, err := nc.service.Create(&in)
	if err != nil {
		if errors.Is(err, services.ErrTitleRequired) {
			resp.BadRequest(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, n)
}

// PATCH /admin/news/:id
func (nc *NewsController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var in services.NewsIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	n, err := nc.service.Update(uint(id), &in)
	if err != nil {
		if errors.Is(err, services.ErrTitleRequired) {
			resp.BadRequest(c, err.Error())
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "news not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, n)
}

// DELETE /admin/news/:id
func (nc *NewsController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if err := nc.service.Delete(uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
