package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shostako/yasuragi-no-sato/pkg/resp"
	"github.com/shostako/yasuragi-no-sato/services"
)

type NotifyController struct {
	notify *services.NotifyService
}

func NewNotifyController(notify *services.NotifyService) *NotifyController {
	return &NotifyController{notify: notify}
}

// POST /notify　管理者宛メール通知。
// SMTP未設定・送信失敗でも success:true で返す（呼び出し側を失敗させない）
func (n *NotifyController) Send(c *gin.Context) {
	var req services.NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if errs := n.notify.Validate(&req); len(errs) > 0 {
		resp.Invalid(c, errs)
		return
	}

	notified, err := n.notify.Send(&req)
	if err != nil {
		log.Printf("notify error: %v", err)
		notified = false
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notified": notified})
}
