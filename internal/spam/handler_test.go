package spam

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

func TestSpamRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Conf = &config.AppConfig{
		JWT:      config.JWTConfig{Secret: "test-secret-key"},
		Registry: config.RegistryConfig{SpamReplacement: "spam/spam", PoisonDumpedAt: "2100-01-01T00:00:00Z"},
	}

	db := testutils.SetupTestDB(t)
	rdb, _ := testutils.SetupTestRedis(t)
	spammer := testutils.CreateTestUser(db)
	testutils.CreateTestPackage(db, []uint{spammer.ID}, testutils.WithVersions(1))

	r := gin.New()
	SetupSpamRoutes(r.Group("/"), db, rdb)

	post := func(actor auth.Actor, path string, body any) *httptest.ResponseRecorder {
		token, err := auth.GenerateToken("test-secret-key", actor, time.Hour)
		require.NoError(t, err)
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	tests := []struct {
		name       string
		actor      auth.Actor
		body       any
		wantStatus int
		wantCode   response.ResponseCode
		wantResult Outcome
	}{
		{
			// 路由层直接拒绝，不进入流程
			name:       "无权限",
			actor:      auth.Actor{UserID: 1, Username: "someone"},
			body:       map[string]bool{"confirm": true},
			wantStatus: http.StatusForbidden,
			wantCode:   response.NotAuthorized,
		},
		{
			name:       "未确认",
			actor:      antispam,
			body:       map[string]bool{"confirm": false},
			wantStatus: http.StatusBadRequest,
			wantCode:   response.ValidationFailed,
			wantResult: Rejected,
		},
		{
			name:       "标记成功",
			actor:      antispam,
			body:       map[string]bool{"confirm": true},
			wantStatus: http.StatusOK,
			wantCode:   response.Success,
			wantResult: Applied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(tt.actor, "/spammers/"+spammer.Username, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			var resp struct {
				Code response.ResponseCode `json:"code"`
				Data Result                `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantResult, resp.Data.Outcome)
		})
	}

	w := post(antispam, "/spammers/index-removal", RetryIndexRemovalRequest{Packages: []string{"acme/gone"}})
	assert.Equal(t, http.StatusOK, w.Code)

	w = post(auth.Actor{UserID: 1, Username: "someone"}, "/spammers/index-removal", RetryIndexRemovalRequest{Packages: []string{"acme/gone"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSpamHandler_MarkSpammerStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		newWorkflow func(f *workflowFixture) *Workflow
		wantStatus  int
		wantCode    response.ResponseCode
		wantOutcome Outcome
		wantState   State
		wantFailed  int
	}{
		{
			name: "索引部分移除失败",
			newWorkflow: func(f *workflowFixture) *Workflow {
				index := &flakyIndex{
					Index:   f.index,
					failing: map[string]bool{f.p1.Name: true},
					calls:   map[string]int{},
				}
				return NewWorkflow(NewGormRegistry(f.db), index, Config{})
			},
			wantStatus:  http.StatusMultiStatus,
			wantCode:    response.IndexRemovalFailed,
			wantOutcome: PartiallyApplied,
			wantState:   StateIndexRemoving,
			wantFailed:  1,
		},
		{
			name: "事务失败",
			newWorkflow: func(f *workflowFixture) *Workflow {
				return NewWorkflow(failingRegistry{Registry: NewGormRegistry(f.db)}, f.index, Config{})
			},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    response.TransactionFailed,
			wantOutcome: Rejected,
			wantState:   StateFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWorkflowFixture(t)
			handler := NewSpamHandler(tt.newWorkflow(f))

			r := gin.New()
			r.POST("/spammers/:name", func(c *gin.Context) {
				auth.SetActor(c, antispam)
				c.Next()
			}, handler.MarkSpammer)

			req := httptest.NewRequest(http.MethodPost, "/spammers/"+f.spammer.Username, bytes.NewReader([]byte(`{"confirm":true}`)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp struct {
				Code response.ResponseCode `json:"code"`
				Data Result                `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantOutcome, resp.Data.Outcome)
			assert.Equal(t, tt.wantState, resp.Data.State)
			require.Len(t, resp.Data.FailedPackages, tt.wantFailed)
			for _, ref := range resp.Data.FailedPackages {
				assert.Equal(t, IndexRemovalFailedKind, ref.Error)
				assert.NotContains(t, w.Body.String(), "connection reset")
			}
		})
	}
}
