package favorite

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"terminal-terrace/registry/internal/auth"
	"terminal-terrace/registry/internal/catalog"
	"terminal-terrace/registry/internal/model/pkg"
	"terminal-terrace/registry/internal/testutils"
	"terminal-terrace/registry/internal/user"
	"terminal-terrace/registry/pkg/response"
)

type serviceFixture struct {
	db      *gorm.DB
	mr      *miniredis.Miniredis
	store   *Store
	service *Service
}

func newServiceFixture(t *testing.T, pageSize int) *serviceFixture {
	t.Helper()
	db := testutils.SetupTestDB(t)
	rdb, mr := testutils.SetupTestRedis(t)

	store := NewStore(rdb)
	store.now = fixedClock()

	return &serviceFixture{
		db:      db,
		mr:      mr,
		store:   store,
		service: NewService(store, user.NewUserRepository(db), catalog.NewPackageRepository(db), pageSize),
	}
}

func TestService_ListFavorites(t *testing.T) {
	f := newServiceFixture(t, 2)
	ctx := context.Background()
	owner := testutils.CreateTestUser(f.db)
	fan := testutils.CreateTestUser(f.db)

	var created []*pkg.Package
	for i := 0; i < 3; i++ {
		p := testutils.CreateTestPackage(f.db, []uint{owner.ID})
		require.NoError(t, f.store.Mark(ctx, fan.ID, p.ID))
		created = append(created, p)
	}

	result, err := f.service.ListFavorites(ctx, fan.Username, 1)
	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	assert.Equal(t, fan.Username, result.User.Name)
	assert.Equal(t, 3, result.Page.TotalCount)
	assert.Equal(t, 2, result.Page.TotalPages)
	require.Len(t, result.Page.Items, 2)
	assert.Equal(t, created[2].Name, result.Page.Items[0].Name)
	assert.Equal(t, created[1].Name, result.Page.Items[1].Name)

	result, err = f.service.ListFavorites(ctx, fan.Username, 2)
	require.NoError(t, err)
	require.Len(t, result.Page.Items, 1)
	assert.Equal(t, created[0].Name, result.Page.Items[0].Name)
}

func TestService_ListFavorites_OutOfRangeIsEmpty(t *testing.T) {
	f := newServiceFixture(t, 2)
	ctx := context.Background()
	fan := testutils.CreateTestUser(f.db)
	p := testutils.CreateTestPackage(f.db, []uint{fan.ID})
	require.NoError(t, f.store.Mark(ctx, fan.ID, p.ID))

	for _, page := range []int{0, 2, 50} {
		result, err := f.service.ListFavorites(ctx, fan.Username, page)
		require.NoError(t, err)
		assert.Empty(t, result.Page.Items)
		assert.Equal(t, 1, result.Page.TotalCount)
		assert.Equal(t, 1, result.Page.TotalPages)
		assert.Equal(t, page, result.Page.CurrentPage)
	}
}

func TestService_ListFavorites_SkipsDanglingPackages(t *testing.T) {
	f := newServiceFixture(t, 15)
	ctx := context.Background()
	fan := testutils.CreateTestUser(f.db)
	p := testutils.CreateTestPackage(f.db, []uint{fan.ID})

	require.NoError(t, f.store.Mark(ctx, fan.ID, p.ID))
	// 包已被删除，Redis 中仍残留收藏
	require.NoError(t, f.store.Mark(ctx, fan.ID, 424242))

	result, err := f.service.ListFavorites(ctx, fan.Username, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Page.TotalCount)
	require.Len(t, result.Page.Items, 1)
	assert.Equal(t, p.ID, result.Page.Items[0].ID)
}

func TestService_ListFavorites_StoreUnavailable(t *testing.T) {
	f := newServiceFixture(t, 15)
	fan := testutils.CreateTestUser(f.db)
	f.mr.Close()

	result, err := f.service.ListFavorites(context.Background(), fan.Username, 1)
	require.NoError(t, err)
	assert.Equal(t, WarningStoreUnavailable, result.Warning)
	assert.Empty(t, result.Page.Items)
	assert.NotNil(t, result.Page.Items)
	assert.Equal(t, 0, result.Page.TotalCount)
}

func TestService_ListFavorites_UnknownUser(t *testing.T) {
	f := newServiceFixture(t, 15)

	_, err := f.service.ListFavorites(context.Background(), "ghost", 1)
	assert.True(t, response.HasCode(err, response.NotFound))
}

func TestService_AddFavorite(t *testing.T) {
	f := newServiceFixture(t, 15)
	ctx := context.Background()
	fan := testutils.CreateTestUser(f.db)
	other := testutils.CreateTestUser(f.db)
	p := testutils.CreateTestPackage(f.db, []uint{other.ID})
	actor := auth.Actor{UserID: fan.ID, Username: fan.Username}

	tests := []struct {
		name     string
		actor    auth.Actor
		username string
		pkgName  string
		wantCode response.ResponseCode
		wantErr  bool
	}{
		{name: "收藏成功", actor: actor, username: fan.Username, pkgName: p.Name},
		{name: "重复收藏", actor: actor, username: fan.Username, pkgName: p.Name},
		{name: "操作他人收藏", actor: actor, username: other.Username, pkgName: p.Name, wantErr: true, wantCode: response.Forbidden},
		{name: "用户不存在", actor: actor, username: "ghost", pkgName: p.Name, wantErr: true, wantCode: response.NotFound},
		{name: "包不存在", actor: actor, username: fan.Username, pkgName: "no/such", wantErr: true, wantCode: response.NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := f.service.AddFavorite(ctx, tt.actor, tt.username, tt.pkgName)
			if tt.wantErr {
				assert.True(t, response.HasCode(err, tt.wantCode), "got %v", err)
				assert.Nil(t, item)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, p.ID, item.ID)
		})
	}

	count, err := f.store.Count(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestService_AddFavorite_StoreUnavailable(t *testing.T) {
	f := newServiceFixture(t, 15)
	fan := testutils.CreateTestUser(f.db)
	p := testutils.CreateTestPackage(f.db, []uint{fan.ID})
	f.mr.Close()

	_, err := f.service.AddFavorite(context.Background(), auth.Actor{UserID: fan.ID}, fan.Username, p.Name)
	assert.True(t, response.HasCode(err, response.StoreUnavailable))
}

func TestService_RemoveFavorite_Idempotent(t *testing.T) {
	f := newServiceFixture(t, 15)
	ctx := context.Background()
	fan := testutils.CreateTestUser(f.db)
	p := testutils.CreateTestPackage(f.db, []uint{fan.ID})
	actor := auth.Actor{UserID: fan.ID, Username: fan.Username}

	_, err := f.service.AddFavorite(ctx, actor, fan.Username, p.Name)
	require.NoError(t, err)

	first := f.service.RemoveFavorite(ctx, actor, fan.Username, p.Name)
	second := f.service.RemoveFavorite(ctx, actor, fan.Username, p.Name)
	assert.NoError(t, first)
	assert.Equal(t, first, second)

	count, err := f.store.Count(ctx, fan.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
