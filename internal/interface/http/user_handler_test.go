package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minbase/account-service/internal/application"
	"github.com/minbase/account-service/internal/infrastructure/redisstore"
	handlers "github.com/minbase/account-service/internal/interface/http"
	"github.com/minbase/account-service/internal/interface/middleware"
	"github.com/minbase/account-service/internal/router"
	"github.com/minbase/account-service/internal/router/modules"
	"github.com/minbase/account-service/pkg/helpers"
	"github.com/minbase/account-service/pkg/validation"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	repo := redisstore.NewUserRepository(rdb)
	svc := application.NewService(repo, jwt, nil, "", rdb, logger, nil, nil, "")
	handler := handlers.NewUserHandler(svc, logger)

	engine := gin.New()
	engine.Use(middleware.RequestIDMiddleware())
	reg := router.NewRegistry(engine)
	reg.Add(modules.NewUserModule(handler, jwt))
	reg.RegisterAll()
	return engine
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body=%s", w.Body.String())
	return out
}

func signupBody() map[string]any {
	return map[string]any{
		"email":    "a@b.com",
		"password": "1234",
		"name":     "Hong",
		"mobile":   "01012345678",
	}
}

func signup(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/users/signup", "", signupBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)["user_id"].(string)
}

func signin(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/users/signin", "", map[string]any{
		"email": "a@b.com", "password": "1234",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody(t, w)["jwt_token"].(string)
}

func TestSignup(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/users/signup", "", signupBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "OK", body["status"])
	assert.Regexp(t, "^[0-9a-f]{32}$", body["user_id"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := newTestRouter(t)
	signup(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/users/signup", "", signupBody())
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ALREADY_EXISTS", decodeBody(t, w)["errorCode"])
}

func TestSignupValidation(t *testing.T) {
	r := newTestRouter(t)

	body := signupBody()
	body["mobile"] = "010-1234-5678" // dashes, 13 chars
	w := doJSON(t, r, http.MethodPost, "/api/users/signup", "", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", resp["errorCode"])
	details := resp["error"].(map[string]any)
	assert.Contains(t, details, "mobile")
}

func TestSignupShortPassword(t *testing.T) {
	r := newTestRouter(t)

	body := signupBody()
	body["password"] = "123"
	w := doJSON(t, r, http.MethodPost, "/api/users/signup", "", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, w)["errorCode"])
}

func TestSignin(t *testing.T) {
	r := newTestRouter(t)
	id := signup(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/users/signin", "", map[string]any{
		"email": "a@b.com", "password": "1234",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["jwt_token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, id, user["id"])
	assert.NotContains(t, user, "password_hash")
	assert.NotEmpty(t, user["last_login_at"])
}

func TestSigninWrongPassword(t *testing.T) {
	r := newTestRouter(t)
	signup(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/users/signin", "", map[string]any{
		"email": "a@b.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeBody(t, w)["errorCode"])
}

func TestSigninUnknownEmail(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/users/signin", "", map[string]any{
		"email": "ghost@b.com", "password": "1234",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeBody(t, w)["errorCode"])
}

func TestUpdateRequiresToken(t *testing.T) {
	r := newTestRouter(t)
	signup(t, r)

	w := doJSON(t, r, http.MethodPut, "/api/users", "", map[string]any{"name": "New"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeBody(t, w)["errorCode"])
}

func TestUpdateRejectsBadToken(t *testing.T) {
	r := newTestRouter(t)
	signup(t, r)

	w := doJSON(t, r, http.MethodPut, "/api/users", "garbage.token.here", map[string]any{"name": "New"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdate(t *testing.T) {
	r := newTestRouter(t)
	signup(t, r)
	token := signin(t, r)

	w := doJSON(t, r, http.MethodPut, "/api/users", token, map[string]any{"name": "Hong Gildong"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "Hong Gildong", body["name"])
	assert.Equal(t, "a@b.com", body["email"])
	assert.Equal(t, "01012345678", body["mobile"])
}

func TestUpdateValidatesMobile(t *testing.T) {
	r := newTestRouter(t)
	signup(t, r)
	token := signin(t, r)

	w := doJSON(t, r, http.MethodPut, "/api/users", token, map[string]any{"mobile": "123"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, w)["errorCode"])
}

func TestDeleteThenProfileNotFound(t *testing.T) {
	r := newTestRouter(t)
	signup(t, r)
	token := signin(t, r)

	w := doJSON(t, r, http.MethodDelete, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "OK", decodeBody(t, w)["status"])

	// the token still parses, but the subject is gone
	w = doJSON(t, r, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, w)["errorCode"])
}

func TestProfile(t *testing.T) {
	r := newTestRouter(t)
	id := signup(t, r)
	token := signin(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, id, body["id"])
	assert.Equal(t, "Hong", body["name"])
}
