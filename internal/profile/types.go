package profile

import (
	"terminal-terrace/registry/internal/model/job"
	"terminal-terrace/registry/internal/model/user"
	"terminal-terrace/registry/internal/pagination"
)

// PackageView 用户包列表中的一项，附带收藏数
type PackageView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Repository  string `json:"repository"`
	Abandoned   bool   `json:"abandoned"`
	Favers      int    `json:"favers"`
}

// PackagesPage 用户维护的包
type PackagesPage struct {
	User user.Summary                 `json:"user"`
	Page pagination.Page[PackageView] `json:"page"`
}

// ProfilePage 用户主页
type ProfilePage struct {
	PackagesPage
	CanMarkSpammer bool `json:"can_mark_spammer"`
}

// OwnProfile 当前登录用户的主页
type OwnProfile struct {
	PackagesPage
	GithubConnected bool     `json:"github_connected"`
	LastGithubSync  *job.Job `json:"last_github_sync,omitempty"`
}
