package profile

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"terminal-terrace/registry/internal/auth"
	"terminal-terrace/registry/internal/catalog"
	"terminal-terrace/registry/internal/favorite"
	"terminal-terrace/registry/internal/model/job"
	userModel "terminal-terrace/registry/internal/model/user"
	"terminal-terrace/registry/internal/scheduler"
	"terminal-terrace/registry/internal/testutils"
	"terminal-terrace/registry/internal/user"
	"terminal-terrace/registry/pkg/response"
)

type fixture struct {
	db      *gorm.DB
	mr      *miniredis.Miniredis
	store   *favorite.Store
	jobs    *scheduler.JobRepository
	service *Service
}

func newFixture(t *testing.T, pageSize int) *fixture {
	t.Helper()
	db := testutils.SetupTestDB(t)
	rdb, mr := testutils.SetupTestRedis(t)
	store := favorite.NewStore(rdb)
	jobs := scheduler.NewJobRepository(db)

	return &fixture{
		db:      db,
		mr:      mr,
		store:   store,
		jobs:    jobs,
		service: NewService(user.NewUserRepository(db), catalog.NewPackageRepository(db), store, jobs, pageSize),
	}
}

func TestService_ListPackages(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()
	owner := testutils.CreateTestUser(f.db)
	fan := testutils.CreateTestUser(f.db)

	for _, name := range []string{"acme/c", "acme/a", "acme/b"} {
		testutils.CreateTestPackage(f.db, []uint{owner.ID}, testutils.WithPackageName(name))
	}
	p, err := catalog.NewPackageRepository(f.db).FindByName(ctx, "acme/a")
	require.NoError(t, err)
	require.NoError(t, f.store.Mark(ctx, fan.ID, p.ID))

	result, err := f.service.ListPackages(ctx, owner.Username, 1)
	require.NoError(t, err)
	assert.Equal(t, owner.Username, result.User.Name)
	assert.Equal(t, 3, result.Page.TotalCount)
	assert.Equal(t, 2, result.Page.TotalPages)
	require.Len(t, result.Page.Items, 2)
	assert.Equal(t, "acme/a", result.Page.Items[0].Name)
	assert.Equal(t, 1, result.Page.Items[0].Favers)
	assert.Equal(t, "acme/b", result.Page.Items[1].Name)
	assert.Equal(t, 0, result.Page.Items[1].Favers)

	// 越界页返回空列表
	result, err = f.service.ListPackages(ctx, owner.Username, 9)
	require.NoError(t, err)
	assert.Empty(t, result.Page.Items)
	assert.Equal(t, 3, result.Page.TotalCount)

	_, err = f.service.ListPackages(ctx, "ghost", 1)
	assert.True(t, response.HasCode(err, response.NotFound))
}

func TestService_ListPackages_FaversDegrade(t *testing.T) {
	f := newFixture(t, 15)
	owner := testutils.CreateTestUser(f.db)
	testutils.CreateTestPackage(f.db, []uint{owner.ID})
	f.mr.Close()

	result, err := f.service.ListPackages(context.Background(), owner.Username, 1)
	require.NoError(t, err)
	require.Len(t, result.Page.Items, 1)
	assert.Zero(t, result.Page.Items[0].Favers)
}

func TestService_ViewProfile_CanMarkSpammer(t *testing.T) {
	f := newFixture(t, 15)
	target := testutils.CreateTestUser(f.db)
	already := testutils.CreateTestUser(f.db, testutils.WithRoles(userModel.RoleSpammer))

	moderator := auth.Actor{UserID: 1000, Roles: []string{userModel.RoleAntispam}}

	tests := []struct {
		name     string
		viewer   auth.Actor
		username string
		want     bool
	}{
		{name: "匿名访问", viewer: auth.Actor{}, username: target.Username, want: false},
		{name: "antispam 用户", viewer: moderator, username: target.Username, want: true},
		{name: "已被标记", viewer: moderator, username: already.Username, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := f.service.ViewProfile(context.Background(), tt.viewer, tt.username, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.CanMarkSpammer)
		})
	}
}

func TestService_MyProfile(t *testing.T) {
	f := newFixture(t, 15)
	ctx := context.Background()
	me := testutils.CreateTestUser(f.db, testutils.WithGithub("7", "gho_token", "public_repo"))

	result, err := f.service.MyProfile(ctx, auth.Actor{UserID: me.ID}, 1)
	require.NoError(t, err)
	assert.True(t, result.GithubConnected)
	assert.Nil(t, result.LastGithubSync)

	s := scheduler.NewJobScheduler(f.jobs, noopPublisher{}, "registry.jobs")
	for i := 0; i < 2; i++ {
		require.NoError(t, s.ScheduleUserScopeMigration(ctx, me.ID, "", fmt.Sprintf("scope-%d", i)))
	}
	s.Wait()

	result, err = f.service.MyProfile(ctx, auth.Actor{UserID: me.ID}, 1)
	require.NoError(t, err)
	require.NotNil(t, result.LastGithubSync)
	assert.Equal(t, job.TypeGithubUserMigrate, result.LastGithubSync.Type)
}

type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	return nil
}
