package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shostako/yasuragi-no-sato/pkg/resp"
	"github.com/shostako/yasuragi-no-sato/repository"
	"github.com/shostako/yasuragi-no-sato/services"
	"github.com/shostako/yasuragi-no-sato/utils"
	"github.com/shostako/yasuragi-no-sato/ws"
	"gorm.io/gorm"
)

type ReservationController struct {
	service *services.ReservationService
	repo    *repository.ReservationRepository
	notify  *services.NotifyService
	hub     *ws.AdminHub
}

func NewReservationController(
	service *services.ReservationService,
	repo *repository.ReservationRepository,
	notify *services.NotifyService,
	hub *ws.AdminHub,
) *ReservationController {
	return &ReservationController{service: service, repo: repo, notify: notify, hub: hub}
}

// GET /reservations/calendar?year=&month=
// 月グリッド（日ごとの選択可否・枠ごとの空き）。未指定は今月
func (rc *ReservationController) Calendar(c *gin.Context) {
	now := time.Now()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	monthNum, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if monthNum < 1 || monthNum > 12 {
		resp.BadRequest(c, "month must be 1-12")
		return
	}

	cal, err := rc.service.Calendar(year, time.Month(monthNum), now)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"calendar": cal, "timeSlots": services.TimeSlots})
}

// POST /reservations　公開フォームからの予約送信
func (rc *ReservationController) Create(c *gin.Context) {
	var req services.CreateReservationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if errs := rc.service.Validate(&req); len(errs) > 0 {
		resp.Invalid(c, errs)
		return
	}

	res, err := rc.service.Create(&req, utils.CurrentUID(c))
	if err != nil {
		// 本体の書き込み失敗だけはユーザーに見せる（再試行してもらう）
		resp.ServerError(c, err)
		return
	}

	// メール通知はベストエフォート。失敗しても予約は成立している
	rc.notify.NotifyReservation(services.NotifyData{
		Name:         res.Name,
		Email:        res.Email,
		Phone:        res.Phone,
		Date:         res.Date,
		TimeSlot:     res.TimeSlot,
		Participants: res.Participants,
	})

	if rc.hub != nil {
		go rc.hub.Publish("new_reservation", gin.H{
			"id": res.ID, "date": res.Date, "timeSlot": res.TimeSlot, "name": res.Name,
		})
	}

	resp.Created(c, gin.H{
		"id":           res.ID,
		"date":         res.Date,
		"timeSlot":     res.TimeSlot,
		"name":         res.Name,
		"participants": res.Participants,
		"status":       res.Status,
	})
}

// GET /member/reservations　自分の予約履歴（閲覧のみ、編集は不可）
func (rc *ReservationController) ListForMe(c *gin.Context) {
	items, err := rc.repo.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /admin/reservations?status=　一覧＋ステータス別の件数
func (rc *ReservationController) AdminList(c *gin.Context) {
	items, err := rc.repo.List(c.Query("status"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	counts, err := rc.repo.CountByStatus()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "counts": counts})
}

// PATCH /admin/reservations/:id/status
func (rc *ReservationController) ChangeStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	res, err := rc.service.ChangeStatus(uint(id), req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			resp.BadRequest(c, "status must be confirmed or cancelled")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "reservation not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, res)
}

// DELETE /admin/reservations/:id
func (rc *ReservationController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if err := rc.service.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "reservation not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
