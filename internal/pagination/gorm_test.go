package pagination_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terminal-terrace/registry/internal/model/pkg"
	"terminal-terrace/registry/internal/pagination"
	"terminal-terrace/registry/internal/testutils"
)

func TestQuerySource_OrderedPages(t *testing.T) {
	db := testutils.SetupTestDB(t)
	owner := testutils.CreateTestUser(db)
	other := testutils.CreateTestUser(db)

	for i := 5; i >= 1; i-- {
		testutils.CreateTestPackage(db, []uint{owner.ID}, testutils.WithPackageName(fmt.Sprintf("acme/pkg-%d", i)))
	}
	testutils.CreateTestPackage(db, []uint{other.ID}, testutils.WithPackageName("acme/foreign"))

	query := db.Model(&pkg.Package{}).
		Joins("JOIN maintainers_packages mp ON mp.package_id = packages.id").
		Where("mp.user_id = ?", owner.ID)
	src := pagination.NewQuerySource[pkg.Package](query, "packages.name ASC")

	pager := pagination.New[pkg.Package](src, pagination.WithPageSize(2), pagination.WithLenient(true))

	first, err := pager.Page(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, first.TotalCount)
	assert.Equal(t, 3, first.TotalPages)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "acme/pkg-1", first.Items[0].Name)
	assert.Equal(t, "acme/pkg-2", first.Items[1].Name)

	last, err := pager.Page(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
	assert.Equal(t, "acme/pkg-5", last.Items[0].Name)

	// 重复使用同一个数据源不会叠加条件
	again, err := pager.Page(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first.Items, again.Items)
}
