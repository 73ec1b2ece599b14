package github

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"terminal-terrace/registry/internal/auth"
	"terminal-terrace/registry/internal/dto"
	"terminal-terrace/registry/pkg/response"
)

type GithubHandler struct {
	service *Service
}

func NewGithubHandler(service *Service) *GithubHandler {
	return &GithubHandler{service: service}
}

// TriggerSync 触发 GitHub 同步
// @Summary 触发 GitHub 仓库同步
// @Tags GitHub
// @Produce json
// @Router /trigger-github-sync/ [post]
func (h *GithubHandler) TriggerSync(c *gin.Context) {
	if err := h.service.RequestSync(c.Request.Context(), auth.ActorFromContext(c)); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, response.CustomResponse(response.WithMessage(MsgSyncStarted)))
}

// Disconnect 解除 GitHub 绑定
// @Summary 解除 GitHub 绑定
// @Tags GitHub
// @Produce json
// @Router /oauth/github/disconnect [post]
func (h *GithubHandler) Disconnect(c *gin.Context) {
	changed, err := h.service.Disconnect(c.Request.Context(), auth.ActorFromContext(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"disconnected": changed})
}
