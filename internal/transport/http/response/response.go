// Package response 统一响应体：集合包一层复数 key，校验错误带字段定位。
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidationError 的响应体形状是对外契约，字段名不要动。
type ValidationBody struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location"`
}

func Validation(c *gin.Context, message, location string) {
	c.JSON(http.StatusUnprocessableEntity, ValidationBody{
		Code:     http.StatusUnprocessableEntity,
		Reason:   "ValidationError",
		Message:  message,
		Location: location,
	})
}

// FieldError 的 400 变体（改账号时路径/字段不符这类）
func BadField(c *gin.Context, message, location string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message":  message,
		"reason":   "ValidationError",
		"location": location,
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
}

func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": message})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"message": message})
}

// Internal 对外永远是一句话，细节只进日志
func Internal(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    http.StatusInternalServerError,
		"message": "Internal server error",
	})
}

func OK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

func Created(c *gin.Context, body any) {
	c.JSON(http.StatusCreated, body)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
