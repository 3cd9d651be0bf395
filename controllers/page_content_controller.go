package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/shostako/yasuragi-no-sato/pkg/resp"
	"github.com/shostako/yasuragi-no-sato/services"
	"github.com/shostako/yasuragi-no-sato/utils"
)

type PageContentController struct {
	service *services.PageContentService
}

func NewPageContentController(service *services.PageContentService) *PageContentController {
	return &PageContentController{service: service}
}

// GET /pages/:pageId/contents　公開。上書きマップを返す
func (pc *PageContentController) Contents(c *gin.Context) {
	contents, err := pc.service.Contents(c.Param("pageId"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"contents": contents})
}

// PUT /admin/pages/:pageId/contents/:key
// roleがadminでも編集モードのトークンでなければ書けない
func (pc *PageContentController) Update(c *gin.Context) {
	if !utils.EditMode(c) {
		resp.Forbidden(c, "edit mode is not enabled")
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	result, err := pc.service.UpdateContent(
		c.Param("pageId"), c.Param("key"), req.Value, utils.CurrentUserID(c))
	if err != nil {
		// クライアントはこのエラーで楽観更新した表示を巻き戻す
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, result)
}
