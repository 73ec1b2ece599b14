package spam

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"terminal-terrace/registry/internal/auth"
	"terminal-terrace/registry/internal/dto"
	"terminal-terrace/registry/pkg/response"
)

type SpamHandler struct {
	workflow *Workflow
}

func NewSpamHandler(workflow *Workflow) *SpamHandler {
	return &SpamHandler{workflow: workflow}
}

type markSpammerBody struct {
	Confirm bool `json:"confirm"`
}

// MarkSpammer 标记垃圾用户
// @Summary 标记垃圾用户并废弃其维护的包
// @Tags Spam
// @Accept json
// @Produce json
// @Param name path string true "用户名"
// @Router /spammers/{name} [post]
func (h *SpamHandler) MarkSpammer(c *gin.Context) {
	var body markSpammerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		// 请求体无法解析时按未确认处理，由流程统一拒绝
		slog.DebugContext(c.Request.Context(), "解析请求体失败", "error", err)
	}

	result, err := h.workflow.MarkSpammer(c.Request.Context(), auth.ActorFromContext(c), MarkSpammerRequest{
		Username: c.Param("name"),
		Confirm:  body.Confirm,
	})
	writeResult(c, result, err)
}

// RetryIndexRemoval 重新从 provider 索引移除包
// @Summary 重试索引移除
// @Tags Spam
// @Accept json
// @Produce json
// @Param request body RetryIndexRemovalRequest true "包名列表"
// @Router /spammers/index-removal [post]
func (h *SpamHandler) RetryIndexRemoval(c *gin.Context) {
	var req RetryIndexRemovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.workflow.RetryIndexRemoval(c.Request.Context(), auth.ActorFromContext(c), req.Packages)
	writeResult(c, result, err)
}

func writeResult(c *gin.Context, result *Result, err error) {
	if err != nil {
		be := response.AsBusinessError(err)
		if be.Code == response.Fail {
			slog.ErrorContext(c.Request.Context(), "标记垃圾用户出错", "error", err)
		}
		dto.ErrorResponseWithData(c, be, result)
		return
	}

	if result.Outcome == PartiallyApplied {
		dto.ErrorResponseWithData(c, response.NewBusinessError(
			response.WithErrorCode(response.IndexRemovalFailed),
			response.WithErrorMessage(result.Reason),
		), result)
		return
	}
	dto.SuccessResponse(c, result)
}
