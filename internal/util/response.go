package util

import (
	"net/http"

	"astro_class_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 통일된 응답 구조
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, MsgServerError)
}

// LogInternalError 의존 서비스 실패는 내부 로그에만 남기고 사용자에게는 일반 메시지만 보낸다.
func LogInternalError(c *gin.Context, err error) {
	LogDependencyError(c, err, MsgServerError)
}

// LogDependencyError 내부 진단 정보는 숨기고 지정한 메시지로 500 을 돌려준다.
func LogDependencyError(c *gin.Context, err error, message string) {
	logger.Log.Error("internal server error", zap.Error(err), zap.String("path", c.FullPath()))
	Error(c, http.StatusInternalServerError, message)
}
