package controller

import (
	"github.com/gin-gonic/gin"

	"gomarket_v1/pkg/errs"
)

// fail 统一的错误响应，状态码由错误类别决定
func fail(ctx *gin.Context, err error) {
	ctx.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
}
