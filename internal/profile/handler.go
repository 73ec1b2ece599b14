package profile

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/registry/internal/auth"
	"terminal-terrace/registry/internal/dto"
	"terminal-terrace/registry/internal/pagination"
)

type ProfileHandler struct {
	service *Service
}

func NewProfileHandler(service *Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// ViewProfile 用户主页
// @Summary 用户主页
// @Tags Profile
// @Produce json
// @Param name path string true "用户名"
// @Param page query int false "页码" default(1)
// @Router /users/{name}/ [get]
func (h *ProfileHandler) ViewProfile(c *gin.Context) {
	page := pagination.ParsePage(c.DefaultQuery("page", "1"))

	result, err := h.service.ViewProfile(c.Request.Context(), auth.ActorFromContext(c), c.Param("name"), page)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// ListPackages 用户维护的包
// @Summary 用户维护的包（分页）
// @Tags Profile
// @Produce json
// @Param name path string true "用户名"
// @Param page query int false "页码" default(1)
// @Router /users/{name}/packages/ [get]
func (h *ProfileHandler) ListPackages(c *gin.Context) {
	page := pagination.ParsePage(c.DefaultQuery("page", "1"))

	result, err := h.service.ListPackages(c.Request.Context(), c.Param("name"), page)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// MyProfile 当前用户主页
// @Summary 当前用户主页
// @Tags Profile
// @Produce json
// @Router /profile [get]
func (h *ProfileHandler) MyProfile(c *gin.Context) {
	page := pagination.ParsePage(c.DefaultQuery("page", "1"))

	result, err := h.service.MyProfile(c.Request.Context(), auth.ActorFromContext(c), page)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}
