package util

import (
	"net/http"

	"trading_edu_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every endpoint returns: err is 0 on success and
// 1 on failure, mess carries the human-readable status.
type Response struct {
	Err  int         `json:"err"`
	Mess string      `json:"mess"`
	Data interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Err:  0,
		Mess: "success",
		Data: data,
	})
}

// SuccessDegraded reports a completed operation that was served from
// surrogate data because the database was unreachable.
func SuccessDegraded(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Err:  0,
		Mess: "serving local data; backend unreachable, changes may not persist",
		Data: data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Err:  0,
		Mess: "created",
		Data: data,
	})
}

func Error(c *gin.Context, code int, mess string) {
	c.JSON(code, Response{
		Err:  1,
		Mess: mess,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "forbidden")
}

func BadRequest(c *gin.Context, mess string) {
	Error(c, http.StatusBadRequest, mess)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}
