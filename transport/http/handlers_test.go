package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/janus-auth/janus/adapters/hasher"
	"github.com/janus-auth/janus/adapters/members"
	"github.com/janus-auth/janus/adapters/store"
	"github.com/janus-auth/janus/adapters/tokenizer"
	"github.com/janus-auth/janus/core"
	"github.com/janus-auth/janus/ports"
	"github.com/janus-auth/janus/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testEmail    = "user@test.com"
	testPassword = "pw"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router    *gin.Engine
	tokenizer ports.Tokenizer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	tok := tokenizer.NewJWTTokenizer([]byte(testSecret))
	sessions := store.NewMemoryStore()
	repo := members.NewMemoryMembers()
	h := hasher.NewBcryptHasher()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	hash, err := h.Hash(testPassword)
	require.NoError(t, err)
	err = repo.Create(context.Background(), &core.Member{
		ID:           "member-1",
		Email:        testEmail,
		PasswordHash: hash,
		Nickname:     "tester",
		Role:         core.RoleUser,
	})
	require.NoError(t, err)

	svc := service.NewAuthService(tok, sessions, repo, h, nil, log, time.Minute, time.Hour)

	return &testServer{router: SetupRouter(svc), tokenizer: tok}
}

func (s *testServer) do(t *testing.T, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (ApiResponse, map[string]any) {
	t.Helper()
	var envelope ApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	data, _ := envelope.Data.(map[string]any)
	return envelope, data
}

func login(t *testing.T, s *testServer) (accessToken, refreshToken string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"user@test.com","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	envelope, data := decodeEnvelope(t, rec)
	require.True(t, envelope.Success)
	accessToken, _ = data["accessToken"].(string)
	require.NotEmpty(t, accessToken)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return accessToken, cookies[0].Value
}

func TestLoginEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"user@test.com","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope, data := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	assert.NotEmpty(t, data["accessToken"])
	assert.Equal(t, "tester", data["nickname"])
	assert.Equal(t, "USER", data["role"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "refreshToken", cookie.Name)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)
}

func TestLoginUnknownMember(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"nobody@test.com","password":"pw"}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	envelope, _ := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"user@test.com","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginValidationFieldMap(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"not-an-email","password":"pw"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	envelope, data := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	assert.Contains(t, data, "Email")
}

func TestProtectedRoute(t *testing.T) {
	s := newTestServer(t)
	access, _ := login(t, s)

	rec := s.do(t, http.MethodGet, "/api/me", "", map[string]string{
		"Authorization": "Bearer " + access,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	_, data := decodeEnvelope(t, rec)
	assert.Equal(t, testEmail, data["email"])
}

func TestProtectedRouteAnonymous(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRouteTamperedToken(t *testing.T) {
	s := newTestServer(t)
	access, _ := login(t, s)

	// Alter the last character by a high-order bit; the low bits of the
	// final base64 character are padding the decoder ignores.
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	idx := strings.IndexByte(alphabet, access[len(access)-1])
	tampered := access[:len(access)-1] + string(alphabet[(idx+32)%64])

	rec := s.do(t, http.MethodGet, "/api/me", "", map[string]string{
		"Authorization": "Bearer " + tampered,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	envelope, _ := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Invalid token", envelope.Message)
}

func TestProtectedRouteExpiredToken(t *testing.T) {
	s := newTestServer(t)

	expired, err := s.tokenizer.Issue(testEmail, -time.Second)
	require.NoError(t, err)

	rec := s.do(t, http.MethodGet, "/api/me", "", map[string]string{
		"Authorization": "Bearer " + expired,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	envelope, _ := decodeEnvelope(t, rec)
	assert.Equal(t, "AccessToken has expired", envelope.Message)
}

func TestReissueRotatesCookie(t *testing.T) {
	s := newTestServer(t)
	_, refresh := login(t, s)

	rec := s.do(t, http.MethodPost, "/api/auth/reissue", "", map[string]string{
		"Cookie": "refreshToken=" + refresh,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	_, data := decodeEnvelope(t, rec)
	assert.NotEmpty(t, data["accessToken"])
	assert.NotContains(t, data, "nickname")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	rotated := cookies[0]
	assert.Equal(t, "refreshToken", rotated.Name)
	assert.NotEqual(t, refresh, rotated.Value)
	assert.True(t, rotated.HttpOnly)
	assert.True(t, rotated.Secure)
	assert.Equal(t, http.SameSiteStrictMode, rotated.SameSite)
}

func TestReissueRejectsReplayedCookie(t *testing.T) {
	s := newTestServer(t)
	_, refresh := login(t, s)

	first := s.do(t, http.MethodPost, "/api/auth/reissue", "", map[string]string{
		"Cookie": "refreshToken=" + refresh,
	})
	require.Equal(t, http.StatusOK, first.Code)

	replay := s.do(t, http.MethodPost, "/api/auth/reissue", "", map[string]string{
		"Cookie": "refreshToken=" + refresh,
	})
	require.Equal(t, http.StatusUnauthorized, replay.Code)

	envelope, _ := decodeEnvelope(t, replay)
	assert.False(t, envelope.Success)
	assert.Empty(t, replay.Result().Cookies(), "a rejected reissue must not rotate the cookie")
}

func TestReissueWithoutCookie(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/reissue", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignupAndDuplicates(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/signup",
		`{"email":"new@test.com","password":"secret123","nickname":"newbie"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Email collision wins even when the nickname collides too.
	rec = s.do(t, http.MethodPost, "/api/auth/signup",
		`{"email":"new@test.com","password":"secret123","nickname":"newbie"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/signup",
		`{"email":"other@test.com","password":"secret123","nickname":"newbie"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckEmailAndNickname(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/auth/check-email?email=user@test.com", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	envelope, _ := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope.Data)

	rec = s.do(t, http.MethodGet, "/api/auth/check-email?email=free@test.com", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	envelope, _ = decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope.Data)

	rec = s.do(t, http.MethodGet, "/api/auth/check-nickname?nickname=tester", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	envelope, _ = decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope.Data)

	rec = s.do(t, http.MethodGet, "/api/auth/check-nickname", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
