package controller

import (
	"errors"

	"astro_class_backend/internal/service"
	"astro_class_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Lookup godoc
// @Summary 수강자 이름 조회
// @Description 명단에서 이름으로 학생을 찾고 비밀번호 설정 여부를 알려준다
// @Tags 인증
// @Produce json
// @Param name query string true "학생 이름"
// @Success 200 {object} util.Response{data=service.LookupResult}
// @Failure 400 {object} util.Response "이름 누락"
// @Failure 404 {object} util.Response "명단에 없음"
// @Failure 500 {object} util.Response
// @Router /auth [get]
func (c *AuthController) Lookup(ctx *gin.Context) {
	name := ctx.Query("name")
	if name == "" {
		util.BadRequest(ctx, util.MsgNameRequired)
		return
	}

	result, err := c.AuthService.Lookup(ctx.Request.Context(), name)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 로그인
// @Description 저장된 비밀번호와 일치하면 학생 신원을 돌려준다
// @Tags 인증
// @Accept json
// @Produce json
// @Param body body LoginRequest true "이름과 비밀번호"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "필수 항목 누락"
// @Failure 401 {object} util.Response "비밀번호 불일치"
// @Failure 404 {object} util.Response "명단에 없거나 비밀번호 미설정"
// @Failure 500 {object} util.Response
// @Router /auth [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.MsgMissingFields)
		return
	}

	student, err := c.AuthService.Login(ctx.Request.Context(), req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrStudentNotFound), errors.Is(err, util.ErrPasswordNotSet):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPasswordMismatch):
			util.Unauthorized(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"student": student})
}

type SetPasswordRequest struct {
	PageID   string `json:"pageId" binding:"required"`
	Password string `json:"password" binding:"required,len=3,numeric"`
}

// SetPassword godoc
// @Summary 비밀번호 설정
// @Description 최초 접속 시 숫자 3자리 비밀번호를 저장하고 학생 신원을 돌려준다
// @Tags 인증
// @Accept json
// @Produce json
// @Param body body SetPasswordRequest true "페이지 ID 와 새 비밀번호"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "필수 항목 누락 또는 형식 오류"
// @Failure 500 {object} util.Response
// @Router /auth [patch]
func (c *AuthController) SetPassword(ctx *gin.Context) {
	var req SetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.MsgMissingFields)
		return
	}

	student, err := c.AuthService.SetPassword(ctx.Request.Context(), req.PageID, req.Password)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"student": student})
}
