package dto

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	res "terminal-terrace/registry/pkg/response"
)

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(200, res.SuccessResponse(data))
}

// CreatedResponse 创建成功
func CreatedResponse(c *gin.Context, data any) {
	c.JSON(201, res.SuccessResponse(data))
}

// WarningResponse 成功但部分数据降级
func WarningResponse(c *gin.Context, data any, warning string) {
	c.JSON(200, res.CustomResponse(res.WithData(data), res.WithWarning(warning)))
}

func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	c.JSON(err.Code.HTTPStatus(), res.ErrorResponse(err.Code, err.Msg))
}

// HandleError 把服务层返回的错误写成响应，非业务错误记录日志后按内部错误处理
func HandleError(c *gin.Context, err error) {
	be := res.AsBusinessError(err)
	if be.Code == res.Fail {
		slog.ErrorContext(c.Request.Context(), "未处理的错误", "path", c.FullPath(), "error", err)
		be = res.NewBusinessError(res.WithErrorMessage("服务器内部错误"))
	}
	ErrorResponse(c, be)
}

// ValidationErrorResponse 处理验证错误，返回友好的JSON字段名
func ValidationErrorResponse(c *gin.Context, err error) {
	if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
		firstErr := validationErrs[0]
		jsonField := toSnakeCase(firstErr.Field())

		var message string
		switch firstErr.Tag() {
		case "required":
			message = fmt.Sprintf("字段 '%s' 是必填项", jsonField)
		case "max":
			message = fmt.Sprintf("字段 '%s' 长度不能超过 %s", jsonField, firstErr.Param())
		case "min":
			message = fmt.Sprintf("字段 '%s' 长度不能少于 %s", jsonField, firstErr.Param())
		case "oneof":
			message = fmt.Sprintf("字段 '%s' 必须是以下值之一: %s", jsonField, firstErr.Param())
		default:
			message = fmt.Sprintf("字段 '%s' 验证失败: %s", jsonField, firstErr.Tag())
		}

		ErrorResponse(c, res.NewBusinessError(
			res.WithErrorCode(res.ParseError),
			res.WithErrorMessage(message),
		))
		return
	}

	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.ParseError),
		res.WithErrorMessage("参数错误: "+err.Error()),
	))
}

// toSnakeCase 将PascalCase转换为snake_case
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}

// ErrorResponseWithData 失败但需要把处理结果一并返回（如部分成功的报告）
func ErrorResponseWithData(c *gin.Context, err *res.BusinessError, data any) {
	c.JSON(err.Code.HTTPStatus(), res.CustomResponse(
		res.WithCode(err.Code),
		res.WithMessage(err.Msg),
		res.WithData(data),
	))
}
