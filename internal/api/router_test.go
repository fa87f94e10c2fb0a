package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-service/internal/core/domain"
	"github.com/usermgmt/user-service/internal/infrastructure/config"
)

// memUserRepo is an in-memory persistence adapter for end-to-end router tests.
type memUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) FindAll(context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Count(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *memUserRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *memUserRepo) CountExcludingRole(_ context.Context, role domain.Role) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role != role {
			n++
		}
	}
	return n, nil
}

func (r *memUserRepo) Insert(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.nextID++
	clone := *u
	clone.ID = fmt.Sprintf("mem-%d", r.nextID)
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now().UTC()
	}
	r.users[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *memUserRepo) Update(_ context.Context, id string, u *domain.User) (*domain.User, error) {
	existing, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for otherID, other := range r.users {
		if otherID != id && other.Email == u.Email {
			return nil, domain.ErrEmailExists
		}
	}
	existing.Name = u.Name
	existing.Email = u.Email
	existing.Role = u.Role
	clone := *existing
	return &clone, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.users, id)
	return u, nil
}

func (r *memUserRepo) Connected(context.Context) bool { return true }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const testAPIKey = "test-key"

func testConfig(maxUsers int) *config.Config {
	return &config.Config{
		Port:        "3000",
		AppName:     "User Management System",
		MaxUsers:    maxUsers,
		DefaultRole: "user",
		Environment: "test",
		Version:     "1.0.0",
		APIKey:      testAPIKey,
	}
}

func doJSON(e http.Handler, method, path, body, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func createUser(t *testing.T, e http.Handler, name, email, role string) map[string]any {
	t.Helper()
	payload := fmt.Sprintf(`{"name":%q,"email":%q`, name, email)
	if role != "" {
		payload += fmt.Sprintf(`,"role":%q`, role)
	}
	payload += "}"

	rec := doJSON(e, http.MethodPost, "/api/users", payload, testAPIKey)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create %s: expected 201, got %d (%s)", email, rec.Code, rec.Body.String())
	}
	var user map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return user
}

// ---------------------------------------------------------------------------
// End-to-end properties
// ---------------------------------------------------------------------------

func TestRouter_CreateThenGetRoundtrip(t *testing.T) {
	e := NewRouter(testConfig(100), newMemUserRepo(), zerolog.Nop())

	created := createUser(t, e, "Alice", "alice@example.com", "admin")
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("created user must carry an id")
	}

	rec := doJSON(e, http.MethodGet, "/api/users/"+id, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["name"] != "Alice" || got["email"] != "alice@example.com" || got["role"] != "admin" {
		t.Errorf("roundtrip fields differ: %v", got)
	}
}

func TestRouter_CreateAtCapacity(t *testing.T) {
	repo := newMemUserRepo()
	e := NewRouter(testConfig(1), repo, zerolog.Nop())

	createUser(t, e, "A", "a@example.com", "")

	rec := doJSON(e, http.MethodPost, "/api/users", `{"name":"B","email":"b@example.com"}`, testAPIKey)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Maximum users limit (1) reached") {
		t.Errorf("expected limit message, got %s", rec.Body.String())
	}
	if len(repo.users) != 1 {
		t.Errorf("count must be unchanged, got %d", len(repo.users))
	}
}

func TestRouter_DuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	e := NewRouter(testConfig(100), repo, zerolog.Nop())

	createUser(t, e, "A", "dup@example.com", "")

	rec := doJSON(e, http.MethodPost, "/api/users", `{"name":"B","email":"dup@example.com"}`, testAPIKey)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Email already exists") {
		t.Errorf("expected duplicate message, got %s", rec.Body.String())
	}
	if len(repo.users) != 1 {
		t.Errorf("expected exactly 1 record, got %d", len(repo.users))
	}
}

func TestRouter_GetUnknownID(t *testing.T) {
	e := NewRouter(testConfig(100), newMemUserRepo(), zerolog.Nop())

	rec := doJSON(e, http.MethodGet, "/api/users/ffffffffffffffffffffffff", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User not found") {
		t.Errorf("expected not-found message, got %s", rec.Body.String())
	}
}

func TestRouter_MutatingWithoutKey(t *testing.T) {
	repo := newMemUserRepo()
	e := NewRouter(testConfig(100), repo, zerolog.Nop())

	cases := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/api/users", `{"name":"A","email":"a@example.com"}`},
		{http.MethodPut, "/api/users/abc", `{"name":"A","email":"a@example.com","role":"user"}`},
		{http.MethodDelete, "/api/users/abc", ""},
	}

	for _, key := range []string{"", "wrong-key"} {
		for _, tc := range cases {
			rec := doJSON(e, tc.method, tc.path, tc.body, key)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("%s %s with key %q: expected 401, got %d", tc.method, tc.path, key, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "Unauthorized: Invalid API Key") {
				t.Errorf("%s %s: unexpected body %s", tc.method, tc.path, rec.Body.String())
			}
		}
	}

	if len(repo.users) != 0 {
		t.Errorf("unauthorized requests must cause no state change, got %d records", len(repo.users))
	}
}

func TestRouter_DeleteThenGet(t *testing.T) {
	e := NewRouter(testConfig(100), newMemUserRepo(), zerolog.Nop())

	created := createUser(t, e, "Alice", "alice@example.com", "")
	id, _ := created["id"].(string)

	rec := doJSON(e, http.MethodDelete, "/api/users/"+id, "", testAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User deleted successfully" {
		t.Errorf("unexpected message: %v", resp["message"])
	}

	rec = doJSON(e, http.MethodGet, "/api/users/"+id, "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rec.Code)
	}
}

func TestRouter_Stats(t *testing.T) {
	e := NewRouter(testConfig(100), newMemUserRepo(), zerolog.Nop())

	createUser(t, e, "A", "a@example.com", "admin")
	createUser(t, e, "B", "b@example.com", "user")
	createUser(t, e, "C", "c@example.com", "guest")

	rec := doJSON(e, http.MethodGet, "/api/stats", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats map[string]float64
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if stats["totalUsers"] != 3 || stats["adminCount"] != 1 || stats["activeUsers"] != 2 {
		t.Errorf("unexpected stats: %v", stats)
	}
}

func TestRouter_ListNewestFirst(t *testing.T) {
	repo := newMemUserRepo()
	e := NewRouter(testConfig(100), repo, zerolog.Nop())

	first := createUser(t, e, "A", "a@example.com", "")
	firstID, _ := first["id"].(string)
	repo.users[firstID].CreatedAt = time.Now().UTC().Add(-time.Hour)
	createUser(t, e, "B", "b@example.com", "")

	rec := doJSON(e, http.MethodGet, "/api/users", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0]["email"] != "b@example.com" {
		t.Errorf("expected newest first, got %v", users[0]["email"])
	}
}

func TestRouter_UnmatchedRoute(t *testing.T) {
	e := NewRouter(testConfig(100), newMemUserRepo(), zerolog.Nop())

	rec := doJSON(e, http.MethodGet, "/api/nonexistent", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "Route not found" {
		t.Errorf("expected Route not found, got %q", resp["error"])
	}
}

func TestRouter_ConfigEcho(t *testing.T) {
	e := NewRouter(testConfig(42), newMemUserRepo(), zerolog.Nop())

	rec := doJSON(e, http.MethodGet, "/api/config", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["appName"] != "User Management System" {
		t.Errorf("unexpected appName: %v", resp["appName"])
	}
	if resp["maxUsers"] != float64(42) {
		t.Errorf("unexpected maxUsers: %v", resp["maxUsers"])
	}
	if resp["defaultRole"] != "user" || resp["environment"] != "test" || resp["version"] != "1.0.0" {
		t.Errorf("unexpected config payload: %v", resp)
	}
}

func TestRouter_DefaultRoleApplied(t *testing.T) {
	e := NewRouter(testConfig(100), newMemUserRepo(), zerolog.Nop())

	created := createUser(t, e, "NoRole", "norole@example.com", "")
	if created["role"] != "user" {
		t.Errorf("expected configured default role, got %v", created["role"])
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e := NewRouter(testConfig(100), newMemUserRepo(), zerolog.Nop())

	rec := doJSON(e, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"database":"connected"`) {
		t.Errorf("unexpected health body: %s", rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
}
