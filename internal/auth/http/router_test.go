package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	authhttp "github.com/modern-notepad/backend/internal/auth/http"
	"github.com/modern-notepad/backend/internal/auth/service"
	"github.com/modern-notepad/backend/internal/common/clock"
	"github.com/modern-notepad/backend/internal/common/config"
	"github.com/modern-notepad/backend/internal/common/crypto"
	"github.com/modern-notepad/backend/internal/common/logger"
	userdomain "github.com/modern-notepad/backend/internal/user/domain"
	userrepo "github.com/modern-notepad/backend/internal/user/repository"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// memoryUserRepo is a map-backed Repository so handler tests can run the
// register, login and change-password flow end to end.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]userdomain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]userdomain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user userdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return userrepo.ErrUsernameAlreadyExists
	}
	r.users[user.Username] = user
	return nil
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	return user, nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id userdomain.ID) (userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (r *memoryUserRepo) UpdatePasswordHash(_ context.Context, id userdomain.ID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for username, user := range r.users {
		if user.ID == id {
			user.PasswordHash = passwordHash
			r.users[username] = user
			return nil
		}
	}
	return userrepo.ErrUserNotFound
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed_" + password, nil
}

func (fakeHasher) Compare(hash string, password string) error {
	if hash != "hashed_"+password {
		return errors.New("password mismatch")
	}
	return nil
}

func setupAuthHandler(t *testing.T) (http.Handler, *memoryUserRepo) {
	t.Helper()

	repo := newMemoryUserRepo()
	log, _ := logger.New("", "test", "info")

	svc := service.NewAuthService(
		service.AuthServiceDeps{
			Repo:   repo,
			Hasher: fakeHasher{},
			IDs:    crypto.NewUUIDGenerator(),
			Clock:  clock.NewMockClock(time.Now().Truncate(time.Second)),
			Log:    log,
		},
		service.AuthServiceConfig{
			JWTSecret: testJWTSecret,
			TokenTTL:  30 * 24 * time.Hour,
		},
	)

	cfg := config.Config{
		JWTSecret:      testJWTSecret,
		RequestTimeout: 30 * time.Second,
	}

	return authhttp.NewHandler(svc, cfg, log), repo
}

func postJSON(t *testing.T, h http.Handler, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return env
}

func TestAuthHTTP_Register_Success(t *testing.T) {
	h, _ := setupAuthHandler(t)

	rec := postJSON(t, h, "/auth/register", map[string]string{
		"username": "alice",
		"password": "pw1",
	}, "")

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if env := decodeEnvelope(t, rec); env.Message != "User registered successfully. Please login." {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestAuthHTTP_Register_Duplicate(t *testing.T) {
	h, _ := setupAuthHandler(t)

	body := map[string]string{"username": "alice", "password": "pw1"}
	if rec := postJSON(t, h, "/auth/register", body, ""); rec.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", rec.Code)
	}

	rec := postJSON(t, h, "/auth/register", body, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Code != "DUPLICATE_USER" {
		t.Errorf("expected code DUPLICATE_USER, got %s", env.Code)
	}
	if env.Message != "User already exists" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestAuthHTTP_Register_MissingFields(t *testing.T) {
	h, _ := setupAuthHandler(t)

	rec := postJSON(t, h, "/auth/register", map[string]string{"username": "alice"}, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Code != "VALIDATION_FAILED" {
		t.Errorf("expected code VALIDATION_FAILED, got %s", env.Code)
	}
	if env.Message != "Please add all fields: password" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestAuthHTTP_Register_InvalidJSON(t *testing.T) {
	h, _ := setupAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != "INVALID_JSON" {
		t.Errorf("expected code INVALID_JSON, got %s", env.Code)
	}
}

func TestAuthHTTP_Register_MethodNotAllowed(t *testing.T) {
	h, _ := setupAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/register", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

func TestAuthHTTP_Login_Success(t *testing.T) {
	h, _ := setupAuthHandler(t)

	postJSON(t, h, "/auth/register", map[string]string{"username": "alice", "password": "pw1"}, "")

	rec := postJSON(t, h, "/auth/login", map[string]string{"username": "alice", "password": "pw1"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected token to be set")
	}
	if resp.User.Username != "alice" || resp.User.ID == "" {
		t.Errorf("unexpected user %+v", resp.User)
	}
}

func TestAuthHTTP_Login_WrongPassword(t *testing.T) {
	h, _ := setupAuthHandler(t)

	postJSON(t, h, "/auth/register", map[string]string{"username": "alice", "password": "pw1"}, "")

	rec := postJSON(t, h, "/auth/login", map[string]string{"username": "alice", "password": "nope"}, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Code != "INVALID_CREDENTIALS" {
		t.Errorf("expected code INVALID_CREDENTIALS, got %s", env.Code)
	}
	if env.Message != "Invalid credentials" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestAuthHTTP_Login_UnknownUserSameMessage(t *testing.T) {
	h, _ := setupAuthHandler(t)

	rec := postJSON(t, h, "/auth/login", map[string]string{"username": "ghost", "password": "pw1"}, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Invalid credentials" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestAuthHTTP_ChangePassword_RequiresToken(t *testing.T) {
	h, _ := setupAuthHandler(t)

	rec := postJSON(t, h, "/auth/change-password", map[string]string{
		"currentPassword": "pw1",
		"newPassword":     "pw2",
	}, "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Code != "MISSING_AUTHORIZATION" {
		t.Errorf("expected code MISSING_AUTHORIZATION, got %s", env.Code)
	}
	if env.Message != "Not authorized, no token" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestAuthHTTP_ChangePassword_FullFlow(t *testing.T) {
	h, _ := setupAuthHandler(t)

	postJSON(t, h, "/auth/register", map[string]string{"username": "alice", "password": "pw1"}, "")

	loginRec := postJSON(t, h, "/auth/login", map[string]string{"username": "alice", "password": "pw1"}, "")
	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(loginRec.Body).Decode(&loginResp); err != nil {
		t.Fatalf("decode login body: %v", err)
	}

	rec := postJSON(t, h, "/auth/change-password", map[string]string{
		"currentPassword": "pw1",
		"newPassword":     "pw2",
	}, loginResp.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if env := decodeEnvelope(t, rec); env.Message != "Password updated successfully" {
		t.Errorf("unexpected message %q", env.Message)
	}

	// Old password no longer works, new one does.
	if rec := postJSON(t, h, "/auth/login", map[string]string{"username": "alice", "password": "pw1"}, ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected old password to be rejected, got %d", rec.Code)
	}
	if rec := postJSON(t, h, "/auth/login", map[string]string{"username": "alice", "password": "pw2"}, ""); rec.Code != http.StatusOK {
		t.Errorf("expected new password to work, got %d", rec.Code)
	}
}

func TestAuthHTTP_ChangePassword_WrongCurrent(t *testing.T) {
	h, _ := setupAuthHandler(t)

	postJSON(t, h, "/auth/register", map[string]string{"username": "alice", "password": "pw1"}, "")
	loginRec := postJSON(t, h, "/auth/login", map[string]string{"username": "alice", "password": "pw1"}, "")
	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(loginRec.Body).Decode(&loginResp); err != nil {
		t.Fatalf("decode login body: %v", err)
	}

	rec := postJSON(t, h, "/auth/change-password", map[string]string{
		"currentPassword": "wrong",
		"newPassword":     "pw2",
	}, loginResp.Token)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Current password is incorrect" {
		t.Errorf("unexpected message %q", env.Message)
	}
}
