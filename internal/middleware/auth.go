package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"terminal-terrace/registry/config"
	"terminal-terrace/registry/internal/auth"
	"terminal-terrace/registry/internal/dto"
	"terminal-terrace/registry/pkg/response"
)

// parseToken 从 cookie 或 Authorization header 中解析 token
func parseToken(c *gin.Context) (*auth.Claims, error) {
	// 优先从 cookie 中获取 access_token
	tokenString, err := c.Cookie("access_token")
	if err != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			return nil, fmt.Errorf("未提供认证令牌")
		}

		// 验证格式: Bearer <token>
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenString = authHeader[7:]
		} else {
			return nil, fmt.Errorf("认证格式错误")
		}
	}

	claims, err := auth.ParseToken(config.Conf.JWT.Secret, tokenString)
	if err != nil {
		return nil, fmt.Errorf("无效的认证令牌")
	}
	return claims, nil
}

// JWTAuth JWT 认证中间件（必需认证）
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c)
		if err != nil {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Unauthorized),
				response.WithErrorMessage(err.Error()),
			))
			c.Abort()
			return
		}

		auth.SetActor(c, claims.Actor())
		c.Next()
	}
}

// OptionalJWTAuth 可选的 JWT 认证中间件（不强制要求认证，但如果有token则解析）
func OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := parseToken(c); err == nil {
			auth.SetActor(c, claims.Actor())
		}
		c.Next()
	}
}

// RequireRole 要求已认证用户持有指定角色，需放在 JWTAuth 之后
func RequireRole(role string, code response.ResponseCode) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.ActorFromContext(c).HasRole(role) {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(code),
				response.WithErrorMessage("权限不足"),
			))
			c.Abort()
			return
		}
		c.Next()
	}
}
