package testutils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"terminal-terrace/registry/internal/model/pkg"
	"terminal-terrace/registry/internal/model/user"
)

// CreateTestUser creates a test user with unique username/email
func CreateTestUser(db *gorm.DB, opts ...UserOption) *user.User {
	uniqueID := uuid.New().String()[:8]

	testUser := &user.User{
		Username:             fmt.Sprintf("user_%s", uniqueID),
		Email:                fmt.Sprintf("user_%s@example.com", uniqueID),
		Enabled:              true,
		Roles:                []string{},
		FailureNotifications: true,
		CreatedAt:            time.Now(),
	}

	for _, opt := range opts {
		opt(testUser)
	}

	if err := db.Create(testUser).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}

	return testUser
}

// UserOption configures test user
type UserOption func(*user.User)

// WithUsername sets the username
func WithUsername(username string) UserOption {
	return func(u *user.User) {
		u.Username = username
	}
}

// WithEmail sets the email
func WithEmail(email string) UserOption {
	return func(u *user.User) {
		u.Email = email
	}
}

// WithRoles sets the roles
func WithRoles(roles ...string) UserOption {
	return func(u *user.User) {
		u.Roles = roles
	}
}

// WithGithub links a GitHub account; empty token/scope stay unset
func WithGithub(id, token, scope string) UserOption {
	return func(u *user.User) {
		u.GithubID = &id
		if token != "" {
			u.GithubToken = &token
		}
		if scope != "" {
			u.GithubScope = &scope
		}
	}
}

// CreateTestPackage creates a package maintained by the given users
func CreateTestPackage(db *gorm.DB, maintainerIDs []uint, opts ...PackageOption) *pkg.Package {
	uniqueID := uuid.New().String()[:8]

	cfg := &packageFixture{
		pkg: &pkg.Package{
			Name:        fmt.Sprintf("vendor-%s/package", uniqueID),
			Description: "Test package description",
			Readme:      "# Test package",
			Repository:  fmt.Sprintf("https://github.com/vendor-%s/package", uniqueID),
		},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if err := db.Create(cfg.pkg).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test package: %v", err))
	}

	for _, userID := range maintainerIDs {
		link := &pkg.MaintainerPackage{PackageID: cfg.pkg.ID, UserID: userID}
		if err := db.Create(link).Error; err != nil {
			panic(fmt.Sprintf("Failed to link maintainer: %v", err))
		}
	}

	for i := 0; i < cfg.versions; i++ {
		v := &pkg.Version{
			PackageID:         cfg.pkg.ID,
			Version:           fmt.Sprintf("1.%d.0", i),
			NormalizedVersion: fmt.Sprintf("1.%d.0.0", i),
			Description:       cfg.pkg.Description,
		}
		if err := db.Create(v).Error; err != nil {
			panic(fmt.Sprintf("Failed to create test version: %v", err))
		}
		cfg.pkg.Versions = append(cfg.pkg.Versions, *v)
	}

	return cfg.pkg
}

type packageFixture struct {
	pkg      *pkg.Package
	versions int
}

// PackageOption configures test package
type PackageOption func(*packageFixture)

// WithPackageName sets the package name
func WithPackageName(name string) PackageOption {
	return func(f *packageFixture) {
		f.pkg.Name = name
	}
}

// WithVersions creates n versions for the package
func WithVersions(n int) PackageOption {
	return func(f *packageFixture) {
		f.versions = n
	}
}
