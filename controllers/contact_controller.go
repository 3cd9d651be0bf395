package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shostako/yasuragi-no-sato/entity"
	"github.com/shostako/yasuragi-no-sato/pkg/resp"
	"github.com/shostako/yasuragi-no-sato/repository"
	"github.com/shostako/yasuragi-no-sato/services"
	"github.com/shostako/yasuragi-no-sato/utils"
	"github.com/shostako/yasuragi-no-sato/ws"
	"gorm.io/gorm"
)

// お問い合わせ種別のラベル（通知メールの本文に入れる）
var inquiryTypeLabels = map[string]string{
	"visit":   "施設見学のご予約",
	"service": "サービスに関するご相談",
	"price":   "料金・ご利用条件について",
	"recruit": "採用に関するお問い合わせ",
	"other":   "その他",
}

type ContactController struct {
	repo   *repository.ContactRepository
	notify *services.NotifyService
	hub    *ws.AdminHub
}

func NewContactController(repo *repository.ContactRepository, notify *services.NotifyService, hub *ws.AdminHub) *ContactController {
	return &ContactController{repo: repo, notify: notify, hub: hub}
}

type CreateContactReq struct {
	InquiryType  string `json:"inquiryType"`
	Name         string `json:"name"`
	Furigana     string `json:"furigana"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	Message      string `json:"message"`
	Privacy      bool   `json:"privacy"`
}

func validateContact(req *CreateContactReq) map[string]string {
	errs := map[string]string{}

	if _, ok := inquiryTypeLabels[req.InquiryType]; !ok {
		errs["inquiryType"] = "お問い合わせ種別を選択してください"
	}
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "お名前を入力してください"
	}
	if strings.TrimSpace(req.Furigana) == "" {
		errs["furigana"] = "フリガナを入力してください"
	}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "メールアドレスを入力してください"
	} else if !services.ValidEmail(req.Email) {
		errs["email"] = "正しいメールアドレスを入力してください"
	}
	if strings.TrimSpace(req.Phone) == "" {
		errs["phone"] = "電話番号を入力してください"
	}
	if strings.TrimSpace(req.Message) == "" {
		errs["message"] = "お問い合わせ内容を入力してください"
	}
	if !req.Privacy {
		errs["privacy"] = "プライバシーポリシーに同意してください"
	}

	return errs
}

// POST /contacts　公開お問い合わせフォーム
func (cc *ContactController) Create(c *gin.Context) {
	var req CreateContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if errs := validateContact(&req); len(errs) > 0 {
		resp.Invalid(c, errs)
		return
	}

	ct := entity.Contact{
		InquiryType: req.InquiryType,
		Name:        req.Name,
		Furigana:    req.Furigana,
		Email:       req.Email,
		Phone:       req.Phone,
		Message:     req.Message,
		Status:      entity.ContactNew,
		UID:         utils.CurrentUID(c),
	}
	if req.Relationship != "" {
		ct.Relationship = &req.Relationship
	}

	if err := cc.repo.Create(&ct); err != nil {
		resp.ServerError(c, err)
		return
	}

	// 通知は失敗しても送信成功扱い
	cc.notify.NotifyContact(services.NotifyData{
		Name:    ct.Name,
		Email:   ct.Email,
		Message: "【" + inquiryTypeLabels[ct.InquiryType] + "】\n" + ct.Message,
	})

	if cc.hub != nil {
		go cc.hub.Publish("new_contact", gin.H{
			"id": ct.ID, "inquiryType": ct.InquiryType, "name": ct.Name,
		})
	}

	resp.Created(c, gin.H{"id": ct.ID, "status": ct.Status})
}

// GET /member/inquiries
func (cc *ContactController) ListForMe(c *gin.Context) {
	items, err := cc.repo.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /admin/contacts?status=
func (cc *ContactController) AdminList(c *gin.Context) {
	items, err := cc.repo.List(c.Query("status"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// PATCH /admin/contacts/:id/status　進める・戻すどちらも可
func (cc *ContactController) ChangeStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Status string `json:"status" binding:"required,oneof=new in_progress done"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if _, err := cc.repo.Get(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "contact not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	if err := cc.repo.UpdateStatus(uint(id), req.Status); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id, "status": req.Status})
}

// DELETE /admin/contacts/:id
func (cc *ContactController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if err := cc.repo.Delete(uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
