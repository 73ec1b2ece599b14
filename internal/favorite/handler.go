package favorite

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/registry/internal/auth"
	"terminal-terrace/registry/internal/dto"
	"terminal-terrace/registry/internal/pagination"
)

type FavoriteHandler struct {
	service *Service
}

func NewFavoriteHandler(service *Service) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// ListFavorites 获取用户收藏列表
// @Summary 用户收藏列表（分页）
// @Tags Favorite
// @Produce json
// @Param name path string true "用户名"
// @Param page query int false "页码" default(1)
// @Router /users/{name}/favorites [get]
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	page := pagination.ParsePage(c.DefaultQuery("page", "1"))

	result, err := h.service.ListFavorites(c.Request.Context(), c.Param("name"), page)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if result.Warning != "" {
		dto.WarningResponse(c, result, result.Warning)
		return
	}
	dto.SuccessResponse(c, result)
}

// AddFavorite 添加收藏
// @Summary 添加收藏
// @Tags Favorite
// @Accept json
// @Produce json
// @Param name path string true "用户名"
// @Param request body AddFavoriteRequest true "包名"
// @Router /users/{name}/favorites [post]
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	item, err := h.service.AddFavorite(c.Request.Context(), auth.ActorFromContext(c), c.Param("name"), req.Package)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.CreatedResponse(c, item)
}

// RemoveFavorite 取消收藏
// @Summary 取消收藏
// @Tags Favorite
// @Param name path string true "用户名"
// @Param vendor path string true "vendor"
// @Param package path string true "包名"
// @Router /users/{name}/favorites/{vendor}/{package} [delete]
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	packageName := c.Param("vendor") + "/" + c.Param("package")

	err := h.service.RemoveFavorite(c.Request.Context(), auth.ActorFromContext(c), c.Param("name"), packageName)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(204)
}
