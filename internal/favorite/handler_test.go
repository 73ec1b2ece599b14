package favorite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terminal-terrace/registry/config"
	"terminal-terrace/registry/internal/auth"
	"terminal-terrace/registry/internal/testutils"
	"terminal-terrace/registry/pkg/response"
)

func TestFavoriteRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Conf = &config.AppConfig{
		JWT:      config.JWTConfig{Secret: "test-secret-key"},
		Registry: config.RegistryConfig{PageSize: 15},
	}

	db := testutils.SetupTestDB(t)
	rdb, _ := testutils.SetupTestRedis(t)
	fan := testutils.CreateTestUser(db)
	p := testutils.CreateTestPackage(db, []uint{fan.ID}, testutils.WithPackageName("acme/widget"))

	r := gin.New()
	SetupFavoriteRoutes(r.Group("/"), db, rdb)

	token, err := auth.GenerateToken("test-secret-key", auth.Actor{UserID: fan.ID, Username: fan.Username}, time.Hour)
	require.NoError(t, err)

	// 添加
	body, _ := json.Marshal(AddFavoriteRequest{Package: p.Name})
	req := httptest.NewRequest(http.MethodPost, "/users/"+fan.Username+"/favorites", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// 列表
	req = httptest.NewRequest(http.MethodGet, "/users/"+fan.Username+"/favorites?page=1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code response.ResponseCode `json:"code"`
		Data FavoritesPage         `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.Success, resp.Code)
	require.Len(t, resp.Data.Page.Items, 1)
	assert.Equal(t, "acme/widget", resp.Data.Page.Items[0].Name)

	// 删除两次都返回 204
	for i := 0; i < 2; i++ {
		req = httptest.NewRequest(http.MethodDelete, "/users/"+fan.Username+"/favorites/acme/widget", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	// 未登录
	req = httptest.NewRequest(http.MethodDelete, "/users/"+fan.Username+"/favorites/acme/widget", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
