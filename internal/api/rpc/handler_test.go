package rpc_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cyrel-edt/cyrel/internal/api/rpc"
	"github.com/cyrel-edt/cyrel/internal/auth"
	"github.com/cyrel-edt/cyrel/internal/models"
	"github.com/cyrel-edt/cyrel/internal/service"
	"github.com/cyrel-edt/cyrel/internal/service/mocks"
	"github.com/cyrel-edt/cyrel/internal/status"
	"github.com/cyrel-edt/cyrel/internal/sync/state"
	statemocks "github.com/cyrel-edt/cyrel/internal/sync/state/mocks"
)

type wireResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type fixture struct {
	svc    *mocks.MockTimetableService
	runs   *statemocks.MockRunStateService
	issuer *auth.TokenIssuer
	server http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	f := &fixture{
		svc:    mocks.NewMockTimetableService(ctrl),
		runs:   statemocks.NewMockRunStateService(ctrl),
		issuer: issuer,
	}
	f.server = auth.Middleware(issuer)(rpc.NewHandler(f.svc, issuer, rpc.WithRunState(f.runs)))
	return f
}

func (f *fixture) post(t *testing.T, body string, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		token, err := f.issuer.Issue(userID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) call(t *testing.T, body string, userID int64) wireResponse {
	t.Helper()
	rec := f.post(t, body, userID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp wireResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	assert.Equal(t, "2.0", resp.JSONRPC)
	return resp
}

func requireCode(t *testing.T, resp wireResponse, code int) {
	t.Helper()
	require.NotNil(t, resp.Error, "expected error %d, got result %s", code, resp.Result)
	assert.Equal(t, code, resp.Error.Code, resp.Error.Message)
}

func TestPing(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"ping"}`, 0)
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `"pong"`, string(resp.Result))
	assert.EqualValues(t, 1, resp.ID)
}

func TestProtocolErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "parse error", body: `{"jsonrpc":`, code: -32700},
		{name: "empty body", body: ``, code: -32700},
		{name: "wrong version", body: `{"jsonrpc":"1.0","id":1,"method":"ping"}`, code: -32600},
		{name: "response instead of request", body: `{"jsonrpc":"2.0","id":1,"result":true}`, code: -32600},
		{name: "empty batch", body: `[]`, code: -32600},
		{name: "unknown method", body: `{"jsonrpc":"2.0","id":1,"method":"nope"}`, code: -32601},
		{name: "positional params", body: `{"jsonrpc":"2.0","id":1,"method":"login","params":[1,"x"]}`, code: -32602},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			requireCode(t, f.call(t, tt.body, 0), tt.code)
		})
	}
}

func TestNotification(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	rec := f.post(t, `{"jsonrpc":"2.0","method":"ping"}`, 0)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBatch(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	rec := f.post(t, `[
		{"jsonrpc":"2.0","id":1,"method":"ping"},
		{"jsonrpc":"2.0","method":"ping"},
		{"jsonrpc":"2.0","id":"two","method":"missing"}
	]`, 0)
	require.Equal(t, http.StatusOK, rec.Code)

	var responses []wireResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &responses))
	require.Len(t, responses, 2, "notifications get no response")
	assert.JSONEq(t, `"pong"`, string(responses[0].Result))
	assert.Equal(t, "two", responses[1].ID)
	requireCode(t, responses[1], -32601)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	alice := &models.User{ID: 22001001, Email: "alice@example.com", Password: hash}

	t.Run("by id", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.svc.EXPECT().GetUserByID(gomock.Any(), int64(22001001)).Return(alice, nil)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"login","params":{"id":22001001,"password":"hunter2"}}`, 0)
		require.Nil(t, resp.Error)

		var token string
		require.NoError(t, json.Unmarshal(resp.Result, &token))
		userID, err := f.issuer.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, int64(22001001), userID)
	})

	t.Run("by email", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.svc.EXPECT().GetUserByEmail(gomock.Any(), "alice@example.com").Return(alice, nil)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"login","params":{"email":" alice@example.com ","password":"hunter2"}}`, 0)
		require.Nil(t, resp.Error)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.svc.EXPECT().GetUserByID(gomock.Any(), int64(22001001)).Return(alice, nil)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"login","params":{"id":22001001,"password":"nope"}}`, 0)
		requireCode(t, resp, rpc.CodeIncorrectLogin)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.svc.EXPECT().GetUserByID(gomock.Any(), int64(1)).Return(nil, service.ErrUserNotFound)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"login","params":{"id":1,"password":"x"}}`, 0)
		requireCode(t, resp, rpc.CodeIncorrectLogin)
	})

	t.Run("missing identity", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"login","params":{"password":"x"}}`, 0)
		requireCode(t, resp, -32602)
	})

	t.Run("database failure is hidden", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.svc.EXPECT().GetUserByID(gomock.Any(), int64(1)).Return(nil, errors.New("connection refused"))

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"login","params":{"id":1,"password":"x"}}`, 0)
		requireCode(t, resp, rpc.CodeServerError)
		assert.NotContains(t, resp.Error.Message, "connection refused")
	})
}

func TestAuthenticatedMethodsRequireToken(t *testing.T) {
	t.Parallel()

	for _, method := range []string{"schedule_get", "groups_get", "groups_user", "groups_join", "config_get", "config_set"} {
		t.Run(method, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"`+method+`","params":{}}`, 0)
			requireCode(t, resp, rpc.CodeUnauthorized)
		})
	}
}

func TestScheduleGet(t *testing.T) {
	t.Parallel()

	start := time.Date(2021, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 9, 8, 0, 0, 0, 0, time.UTC)
	room := "A101"

	t.Run("naive timestamps", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.svc.EXPECT().GroupSchedule(gomock.Any(), int64(7), int32(3), start, end).
			Return([]models.CourseRecord{{ID: "c1", Start: start.Add(8 * time.Hour), Room: &room}}, nil)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"schedule_get",
			"params":{"start":"2021-09-01T00:00:00","end":"2021-09-08T00:00:00","group":3}}`, 7)
		require.Nil(t, resp.Error)

		var courses []models.CourseRecord
		require.NoError(t, json.Unmarshal(resp.Result, &courses))
		require.Len(t, courses, 1)
		assert.Equal(t, "c1", courses[0].ID)
		assert.Equal(t, "A101", *courses[0].Room)
	})

	t.Run("empty schedule is an empty list", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.svc.EXPECT().GroupSchedule(gomock.Any(), int64(7), int32(3), start, end).Return(nil, nil)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"schedule_get",
			"params":{"start":"2021-09-01T00:00:00Z","end":"2021-09-08T00:00:00Z","group":3}}`, 7)
		require.Nil(t, resp.Error)
		assert.JSONEq(t, `[]`, string(resp.Result))
	})

	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "not a member", err: service.ErrNotMember, code: rpc.CodeUnauthorized},
		{name: "unknown group", err: service.ErrGroupNotFound, code: -32602},
		{name: "inverted range", err: service.ErrInvalidRange, code: -32602},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			f.svc.EXPECT().GroupSchedule(gomock.Any(), int64(7), int32(3), start, end).Return(nil, tt.err)

			resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"schedule_get",
				"params":{"start":"2021-09-01T00:00:00","end":"2021-09-08T00:00:00","group":3}}`, 7)
			requireCode(t, resp, tt.code)
		})
	}

	t.Run("bad timestamp", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"schedule_get",
			"params":{"start":"yesterday","end":"2021-09-08T00:00:00","group":3}}`, 7)
		requireCode(t, resp, -32602)
	})

	t.Run("missing group", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"schedule_get",
			"params":{"start":"2021-09-01T00:00:00","end":"2021-09-08T00:00:00"}}`, 7)
		requireCode(t, resp, -32602)
	})
}

func TestGroups(t *testing.T) {
	t.Parallel()

	groups := []models.Group{{ID: 1, Name: "L3 Informatique"}, {ID: 2, Name: "TD1"}}

	t.Run("groups_get", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.svc.EXPECT().ListPublicGroups(gomock.Any()).Return(groups, nil)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"groups_get"}`, 7)
		require.Nil(t, resp.Error)
		var got []models.Group
		require.NoError(t, json.Unmarshal(resp.Result, &got))
		assert.Equal(t, groups, got)
	})

	t.Run("groups_user", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.svc.EXPECT().ListUserGroups(gomock.Any(), int64(7)).Return(nil, nil)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"groups_user"}`, 7)
		require.Nil(t, resp.Error)
		assert.JSONEq(t, `[]`, string(resp.Result))
	})

	t.Run("groups_join", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.svc.EXPECT().JoinGroup(gomock.Any(), int64(7), int32(2)).Return(nil)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"groups_join","params":{"group":2}}`, 7)
		require.Nil(t, resp.Error)
		assert.JSONEq(t, `true`, string(resp.Result))
	})

	t.Run("groups_join private", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.svc.EXPECT().JoinGroup(gomock.Any(), int64(7), int32(9)).Return(service.ErrPrivateGroup)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"groups_join","params":{"group":9}}`, 7)
		requireCode(t, resp, rpc.CodeUnauthorized)
	})

	t.Run("groups_join twice", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.svc.EXPECT().JoinGroup(gomock.Any(), int64(7), int32(2)).Return(service.ErrAlreadyMember)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"groups_join","params":{"group":2}}`, 7)
		requireCode(t, resp, -32602)
	})
}

func TestSyncStatus(t *testing.T) {
	t.Parallel()

	finished := time.Date(2021, 9, 1, 6, 0, 0, 0, time.UTC)
	run := &status.SyncRun{
		Kind:        status.SyncKindCourses,
		Phase:       status.SyncPhaseComplete,
		GroupsTotal: 12,
		Courses:     340,
		StartedAt:   finished.Add(-3 * time.Minute),
		FinishedAt:  &finished,
	}

	t.Run("defaults to courses", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.runs.EXPECT().LatestRun(gomock.Any(), status.SyncKindCourses).Return(run, nil)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"sync_status"}`, 0)
		require.Nil(t, resp.Error)
		var got status.SyncRun
		require.NoError(t, json.Unmarshal(resp.Result, &got))
		assert.Equal(t, status.SyncPhaseComplete, got.Phase)
		assert.Equal(t, 340, got.Courses)
	})

	t.Run("never ran", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.runs.EXPECT().LatestRun(gomock.Any(), status.SyncKindStudents).Return(nil, state.ErrNoRuns)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"sync_status","params":{"kind":"students"}}`, 0)
		require.Nil(t, resp.Error)
		assert.JSONEq(t, `null`, string(resp.Result))
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"sync_status","params":{"kind":"teachers"}}`, 0)
		requireCode(t, resp, -32602)
	})
}

func TestClientConfig(t *testing.T) {
	t.Parallel()

	t.Run("get unset", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.svc.EXPECT().GetClientConfig(gomock.Any(), int64(7), int32(1)).Return(nil, nil)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"config_get","params":{"client":1}}`, 7)
		require.Nil(t, resp.Error)
		assert.JSONEq(t, `null`, string(resp.Result))
	})

	t.Run("get stored", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		stored := `{"theme":"dark"}`
		f.svc.EXPECT().GetClientConfig(gomock.Any(), int64(7), int32(1)).Return(&stored, nil)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"config_get","params":{"client":1}}`, 7)
		require.Nil(t, resp.Error)
		var got string
		require.NoError(t, json.Unmarshal(resp.Result, &got))
		assert.Equal(t, stored, got)
	})

	t.Run("set", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.svc.EXPECT().SetClientConfig(gomock.Any(), int64(7), int32(1), "v2").Return(nil)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"config_set","params":{"client":1,"config":"v2"}}`, 7)
		require.Nil(t, resp.Error)
	})

	t.Run("unknown client", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.svc.EXPECT().SetClientConfig(gomock.Any(), int64(7), int32(99), "v2").Return(service.ErrClientNotFound)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"config_set","params":{"client":99,"config":"v2"}}`, 7)
		requireCode(t, resp, -32602)
	})

	t.Run("set without config", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		resp := f.call(t, `{"jsonrpc":"2.0","id":1,"method":"config_set","params":{"client":1}}`, 7)
		requireCode(t, resp, -32602)
	})
}
