package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code int         `json:"code"` // 0:成功, -1:失败
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 0,
		Msg:  "success",
		Data: data,
	})
}

// Fail 业务失败，HTTP 状态仍为 200
func Fail(c *gin.Context, msg string) {
	FailWithData(c, msg, nil)
}

func FailWithData(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: -1,
		Msg:  msg,
		Data: data,
	})
}

// Error 请求本身有问题（参数错误、会话不存在）时使用对应的 HTTP 状态
func Error(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Response{
		Code: -1,
		Msg:  msg,
	})
}

// Raw 不带信封，直接写出业务对象（兼容旧前端的 /api 接口）
func Raw(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// RawError 旧前端只检查 HTTP 状态，错误体为 {"error": msg}
func RawError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
