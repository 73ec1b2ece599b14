// Package auth 描述发起请求的用户（Actor）以及访问令牌的签发与解析。
// 服务层的每个操作都显式接收 Actor，不从全局状态查询当前用户。
package auth

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// gin 上下文中的键，由 JWT 中间件写入
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRoles    = "roles"
)

// Actor 发起请求的已认证用户
type Actor struct {
	UserID   uint
	Username string
	Roles    []string
}

// Anonymous 未登录
func (a Actor) Anonymous() bool {
	return a.UserID == 0
}

// HasRole 角色判断（大小写不敏感）
func (a Actor) HasRole(role string) bool {
	return slices.ContainsFunc(a.Roles, func(r string) bool {
		return strings.EqualFold(r, role)
	})
}

// ActorFromContext 从 gin 上下文取出 Actor，未经过认证时返回匿名 Actor
func ActorFromContext(c *gin.Context) Actor {
	var actor Actor
	if v, ok := c.Get(CtxUserID); ok {
		actor.UserID, _ = v.(uint)
	}
	actor.Username = c.GetString(CtxUsername)
	actor.Roles = c.GetStringSlice(CtxRoles)
	return actor
}

// SetActor 把 Actor 写入 gin 上下文
func SetActor(c *gin.Context, actor Actor) {
	c.Set(CtxUserID, actor.UserID)
	c.Set(CtxUsername, actor.Username)
	c.Set(CtxRoles, actor.Roles)
}
