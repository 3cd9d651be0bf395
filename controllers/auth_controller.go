package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shostako/yasuragi-no-sato/configs"
	"github.com/shostako/yasuragi-no-sato/entity"
	"github.com/shostako/yasuragi-no-sato/pkg/resp"
	"github.com/shostako/yasuragi-no-sato/repository"
	"github.com/shostako/yasuragi-no-sato/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"displayName" binding:"required"`
}
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	repo *repository.UserRepository
	cfg  *configs.Config
}

func NewAuthController(repo *repository.UserRepository, cfg *configs.Config) *AuthController {
	return &AuthController{repo: repo, cfg: cfg}
}

// POST /auth/register　会員登録。roleは必ずmemberで始まる
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	email := strings.ToLower(req.Email)
	if _, err := a.repo.GetByEmail(email); err == nil {
		resp.BadRequest(c, "email already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	user := entity.User{
		Email:       email,
		Password:    string(hashed),
		DisplayName: req.DisplayName,
		Role:        "member",
	}

	if err := a.repo.Create(&user); err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.Created(c, gin.H{
		"id": user.ID, "email": user.Email, "displayName": user.DisplayName, "role": user.Role,
	})
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := a.repo.GetByEmail(strings.ToLower(req.Email))
	if err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, false, a.cfg.JWTSecret, a.cfg.JWTTTL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"token": token,
		"user": gin.H{
			"id": user.ID, "email": user.Email, "displayName": user.DisplayName, "role": user.Role,
		},
	})
}

// GET /auth/me (要ログイン)
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.repo.Get(utils.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "user not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"id": user.ID, "email": user.Email, "displayName": user.DisplayName,
		"role": user.Role, "editMode": utils.EditMode(c),
	})
}

// PATCH /auth/me　表示名のみ変更可
func (a *AuthController) UpdateMe(c *gin.Context) {
	var req struct {
		DisplayName string `json:"displayName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := a.repo.UpdateDisplayName(utils.CurrentUserID(c), req.DisplayName); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"displayName": req.DisplayName})
}

// POST /auth/edit-mode　インライン編集モードの切り替え。
// 編集モードのトークンを発行できるのは管理者だけ（role所持だけでは編集不可、
// 明示的にONにした場合のみ）
func (a *AuthController) ToggleEditMode(c *gin.Context) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	role := utils.CurrentRole(c)
	if req.Enabled && role != "admin" {
		resp.Forbidden(c, "edit mode requires admin role")
		return
	}

	token, err := utils.GenerateToken(utils.CurrentUserID(c), role, req.Enabled, a.cfg.JWTSecret, a.cfg.JWTTTL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "editMode": req.Enabled && role == "admin"})
}

// POST /setup/admin　一度きりの管理者昇格ルート。
// ENABLE_ADMIN_SETUP=true のときだけ有効（本番では無効化しておく）
func (a *AuthController) SetupAdmin(c *gin.Context) {
	if !a.cfg.EnableAdminSetup {
		resp.Forbidden(c, "このページは無効化されています")
		return
	}

	user, err := a.repo.Get(utils.CurrentUserID(c))
	if err != nil {
		resp.Unauthorized(c, "ログインしてください")
		return
	}

	if err := a.repo.PromoteToAdmin(user.ID); err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.OK(c, gin.H{"message": user.Email + " を管理者に設定しました", "role": "admin"})
}
