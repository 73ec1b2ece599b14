package user

import (
	"crypto/md5"
	"encoding/hex"
	"slices"
	"strings"
	"time"
)

const (
	RoleUser     = "ROLE_USER"
	RoleAntispam = "ROLE_ANTISPAM"
	RoleSpammer  = "ROLE_SPAMMER"
)

// User 用户模型
// GitHub 相关字段整体有效：token/scope 只有在 GithubID 存在时才有意义，解绑时三者一起清空
type User struct {
	ID                   uint      `gorm:"column:id;primaryKey" json:"id"`
	Username             string    `gorm:"column:username;type:varchar(180);not null;uniqueIndex" json:"username"`
	Email                string    `gorm:"column:email;type:varchar(180);not null" json:"-"`
	Enabled              bool      `gorm:"column:enabled;not null;default:true" json:"enabled"`
	Roles                []string  `gorm:"column:roles;serializer:json" json:"roles"`
	APIToken             *string   `gorm:"column:api_token;type:varchar(20)" json:"-"`
	GithubID             *string   `gorm:"column:github_id;type:varchar(255)" json:"-"`
	GithubToken          *string   `gorm:"column:github_token;type:varchar(255)" json:"-"`
	GithubScope          *string   `gorm:"column:github_scope;type:varchar(255)" json:"-"`
	FailureNotifications bool      `gorm:"column:failure_notifications;not null;default:true" json:"failure_notifications"`
	CreatedAt            time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// HasRole 角色判断（大小写不敏感）
func (u *User) HasRole(role string) bool {
	role = strings.ToUpper(role)
	return slices.ContainsFunc(u.Roles, func(r string) bool {
		return strings.ToUpper(r) == role
	})
}

// AddRole 添加角色，已存在时不重复添加
func (u *User) AddRole(role string) {
	role = strings.ToUpper(role)
	if role == RoleUser || u.HasRole(role) {
		return
	}
	u.Roles = append(u.Roles, role)
}

// HasGithubLink 是否绑定了 GitHub
func (u *User) HasGithubLink() bool {
	return u.GithubID != nil && *u.GithubID != ""
}

// HasGithubToken 是否持有 GitHub token
func (u *User) HasGithubToken() bool {
	return u.GithubToken != nil && *u.GithubToken != ""
}

// HasGithubScope 是否记录了 OAuth scope
func (u *User) HasGithubScope() bool {
	return u.GithubScope != nil && *u.GithubScope != ""
}

// DisconnectGithub 清空 GitHub 绑定信息，返回是否发生变化
func (u *User) DisconnectGithub() bool {
	if !u.HasGithubLink() {
		return false
	}
	u.GithubID = nil
	u.GithubToken = nil
	u.GithubScope = nil
	return true
}

// GravatarURL 头像地址
func (u *User) GravatarURL() string {
	sum := md5.Sum([]byte(strings.ToLower(u.Email)))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?d=identicon"
}

// Summary 对外展示的用户信息
type Summary struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

func (u *User) Summary() Summary {
	return Summary{
		Name:      u.Username,
		AvatarURL: u.GravatarURL(),
	}
}
