package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/sakif/your-yoda/internal/auth"
	"github.com/sakif/your-yoda/internal/handler"
	"github.com/sakif/your-yoda/internal/model"
	"github.com/sakif/your-yoda/internal/repository/memory"
	"github.com/sakif/your-yoda/internal/service"
)

// =========================================================================
// HELPERS
// =========================================================================

type testEnv struct {
	router http.Handler
	store  *memory.Store
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T, github *auth.GitHubProvider) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()

	tokens, err := auth.NewTokenService("handler-test-secret-0123456789", 0)
	require.NoError(t, err)

	authSvc := service.NewAuthService(store.Users(), tokens, auth.NewPasswordServiceForTest(4), logger)
	ah := handler.NewAuthHandler(authSvc, github, logger)
	sh := handler.NewScheduleHandler(service.NewScheduleService(store.Schedules(), logger), logger)
	lh := handler.NewLetterHandler(service.NewLetterService(store.Letters(), nil, logger), logger)

	r := chi.NewRouter()
	r.Get("/health", handler.HandleHealth)
	r.Post("/auth/register", ah.HandleRegister)
	r.Post("/auth/login", ah.HandleLogin)
	r.Get("/auth/github/login", ah.HandleGitHubLogin)
	r.Get("/auth/github/callback", ah.HandleGitHubCallback)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Get("/auth/me", ah.HandleMe)
		r.Get("/schedules", sh.HandleList)
		r.Post("/schedules", sh.HandleCreate)
		r.Get("/letters", lh.HandleList)
		r.Patch("/letters/{id}/read", lh.HandleMarkRead)
	})

	return &testEnv{router: r, store: store, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

type authBody struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

func (e *testEnv) register(t *testing.T, name, email string) authBody {
	t.Helper()

	rr := e.do(t, http.MethodPost, "/auth/register",
		`{"name":"`+name+`","email":"`+email+`","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var body authBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var e handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&e))
	return e
}

// =========================================================================
// HEALTH + AUTH
// =========================================================================

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t, nil)

	reg := env.register(t, "Mina", "mina@gmail.com")
	assert.Equal(t, "Mina", reg.User.Name)
	assert.NotEmpty(t, reg.Token)
	assert.NotContains(t, env.do(t, http.MethodGet, "/auth/me", "", reg.Token).Body.String(), "password")

	t.Run("duplicate email is 400", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/auth/register",
			`{"name":"Mina","email":"mina@gmail.com","password":"password123"}`, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "validation_error", decodeError(t, rr).Error)
	})

	t.Run("login ok", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/auth/login", `{"email":"mina@gmail.com","password":"password123"}`, "")
		require.Equal(t, http.StatusOK, rr.Code)

		var body authBody
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, reg.User.ID, body.User.ID)
	})

	t.Run("login wrong password is 401", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/auth/login", `{"email":"mina@gmail.com","password":"nope-nope"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "unauthorized", decodeError(t, rr).Error)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/auth/login", `{"email":`, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("me", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/auth/me", "", reg.Token)
		require.Equal(t, http.StatusOK, rr.Code)

		var u model.User
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&u))
		assert.Equal(t, "mina@gmail.com", u.Email)
	})
}

func TestBearerErrors(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, http.MethodGet, "/schedules", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "unauthorized", decodeError(t, rr).Error)

	rr = env.do(t, http.MethodGet, "/schedules", "", "not-a-jwt")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "forbidden", decodeError(t, rr).Error)

	expired, err := env.tokens.GenerateWithDuration("user-1", "a@b.com", -time.Minute)
	require.NoError(t, err)
	rr = env.do(t, http.MethodGet, "/letters", "", expired)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

// =========================================================================
// SCHEDULES
// =========================================================================

func TestSchedules(t *testing.T) {
	env := newTestEnv(t, nil)
	mina := env.register(t, "Mina", "mina@gmail.com")
	other := env.register(t, "Other", "other@gmail.com")

	rr := env.do(t, http.MethodPost, "/schedules", `{
		"content": "Important presentation",
		"date": "2026-10-17",
		"emotions": ["excited", "tense"],
		"senderType": "famous",
		"senderName": "Trump"
	}`, mina.Token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created model.Schedule
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.Equal(t, mina.User.ID, created.UserID)
	assert.Equal(t, model.PersonaCelebrity, created.SenderType)

	rr = env.do(t, http.MethodGet, "/schedules", "", mina.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []model.Schedule
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	rr = env.do(t, http.MethodGet, "/schedules", "", other.Token)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestCreateSchedule_Validation(t *testing.T) {
	env := newTestEnv(t, nil)
	mina := env.register(t, "Mina", "mina@gmail.com")

	tests := []struct {
		name string
		body string
	}{
		{"missing content", `{"date":"2026-10-17","emotions":["calm"],"senderType":"mentor"}`},
		{"bad date", `{"content":"x","date":"tomorrow","emotions":["calm"],"senderType":"mentor"}`},
		{"no emotions", `{"content":"x","date":"2026-10-17","emotions":[],"senderType":"mentor"}`},
		{"unknown emotion", `{"content":"x","date":"2026-10-17","emotions":["bored"],"senderType":"mentor"}`},
		{"unknown sender", `{"content":"x","date":"2026-10-17","emotions":["calm"],"senderType":"pirate"}`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, "/schedules", tt.body, mina.Token)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "validation_error", decodeError(t, rr).Error)
		})
	}
}

// =========================================================================
// LETTERS
// =========================================================================

func TestLetters_ListAndMarkRead(t *testing.T) {
	env := newTestEnv(t, nil)
	mina := env.register(t, "Mina", "mina@gmail.com")
	other := env.register(t, "Other", "other@gmail.com")

	letter := &model.Letter{
		UserID:     mina.User.ID,
		ScheduleID: "schedule-1",
		SenderType: model.PersonaMentor,
		SenderName: "Tanaka Sensei",
		Content:    "Dear Mina,",
	}
	require.NoError(t, env.store.Letters().Create(context.Background(), letter))

	rr := env.do(t, http.MethodGet, "/letters", "", mina.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Nil(t, list[0]["readAt"], "unread letters carry readAt: null")

	path := "/letters/" + letter.ID + "/read"

	rr = env.do(t, http.MethodPatch, path, "", other.Token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodPatch, path, "", mina.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	var first struct {
		Success bool      `json:"success"`
		ReadAt  time.Time `json:"readAt"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&first))
	assert.True(t, first.Success)
	assert.False(t, first.ReadAt.IsZero())

	rr = env.do(t, http.MethodPatch, path, "", mina.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	var second struct {
		ReadAt time.Time `json:"readAt"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&second))
	assert.True(t, first.ReadAt.Equal(second.ReadAt))

	rr = env.do(t, http.MethodPatch, "/letters/missing/read", "", mina.Token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// =========================================================================
// GITHUB
// =========================================================================

func TestGitHub_NotConfigured(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, http.MethodGet, "/auth/github/login", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGitHub_LoginAndCallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "gh-token", "token_type": "bearer"})
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(auth.GitHubUser{ID: 9, Login: "mina", Name: "Mina"})
	})
	gh := httptest.NewServer(mux)
	t.Cleanup(gh.Close)

	provider := auth.NewGitHubProvider("id", "secret", "http://localhost/auth/github/callback").WithEndpoint(
		oauth2.Endpoint{AuthURL: gh.URL + "/authorize", TokenURL: gh.URL + "/token"},
		gh.URL+"/user",
	)
	env := newTestEnv(t, provider)

	rr := env.do(t, http.MethodGet, "/auth/github/login", "", "")
	require.Equal(t, http.StatusTemporaryRedirect, rr.Code)

	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)

	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)

	t.Run("state mismatch", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=c&state=wrong", nil)
		req.AddCookie(cookies[0])
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=c&state="+state, nil)
		req.AddCookie(cookies[0])
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var body authBody
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "Mina", body.User.Name)
		assert.Equal(t, "9+mina@users.noreply.github.com", body.User.Email)

		id, err := env.tokens.Validate(body.Token)
		require.NoError(t, err)
		assert.Equal(t, body.User.ID, id.UserID)
	})
}
