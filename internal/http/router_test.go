package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smagen/go-recipe-backend/internal/auth"
	"github.com/smagen/go-recipe-backend/internal/catalog"
	"github.com/smagen/go-recipe-backend/internal/config"
	"github.com/smagen/go-recipe-backend/internal/domain"
	"github.com/smagen/go-recipe-backend/internal/http/middleware"
)

// --- fake catalog store ---

type fakeStore struct {
	items []catalog.ListItem
}

func (f fakeStore) List(_ context.Context) ([]catalog.ListItem, error) { return f.items, nil }

func (f fakeStore) Get(_ context.Context, slug string) (*catalog.Recipe, error) {
	for _, it := range f.items {
		if it.Slug == slug {
			return &catalog.Recipe{ListItem: it, Ingredients: []string{"2 æg", "1 dl mælk"}}, nil
		}
	}
	return nil, catalog.ErrNotFound
}

// --- fake auth provider ---

type fakeProvider struct {
	account auth.Account
}

func (f fakeProvider) SignUp(_ context.Context, email, _ string) (*auth.Session, error) {
	a := f.account
	a.Email = email
	return &auth.Session{AccessToken: "tok", User: a}, nil
}

func (f fakeProvider) SignIn(_ context.Context, email, _ string) (*auth.Session, error) {
	a := f.account
	a.Email = email
	return &auth.Session{AccessToken: "tok", User: a}, nil
}

func (f fakeProvider) SignOut(_ context.Context, _ string) error { return nil }

func (f fakeProvider) GetUser(_ context.Context, _ string) (*auth.Account, error) {
	a := f.account
	return &a, nil
}

func (f fakeProvider) UpdateUser(_ context.Context, _ string, _ auth.ProfileUpdate) (*auth.Account, error) {
	a := f.account
	return &a, nil
}

func (f fakeProvider) DeleteUser(_ context.Context, _ string) error    { return nil }
func (f fakeProvider) ResetPassword(_ context.Context, _ string) error { return nil }

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// schema so handlers don't explode on review endpoints
	if err := db.AutoMigrate(&domain.User{}, &domain.Review{}, &domain.Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath: "/api",
		RateRPS:     100,
		RateBurst:   50,
		CORS:        config.CORSConfig{AllowedOrigins: nil}, // triggers AllowAllOrigins branch
		Security:    config.SecurityConfig{EnableHSTS: false, HSTSMaxAge: 0},
		OTEL:        config.OTELConfig{ServiceName: "test-svc"},
	}
}

func testCatalog() fakeStore {
	return fakeStore{items: []catalog.ListItem{
		{Slug: "pandekager", Title: "Pandekager", Category: "Morgenmad", Time: "15 min"},
		{Slug: "boeuf", Title: "Boeuf Bourguignon", Category: "Kød", Time: "3 timer"},
		{Slug: "flaeskesteg", Title: "Flæskesteg", Category: "Kød", Time: "2 timer"},
	}}
}

func newRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, db, testCatalog(), fakeProvider{account: auth.Account{ID: "u1"}}, testConfig())
	return r
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	r := newRouter(t, newTestDB(t))

	// /health works
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS (AllowAllOrigins) → header "*"
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}

	// /metrics is wired
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || len(w.Body.Bytes()) == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// NoRoute → 404
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope expected 404, got %d", w.Code)
	}

	// NoMethod → 405 (POST /health)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := testConfig()
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://example.com"}}
	RegisterRoutes(r, newTestDB(t), testCatalog(), fakeProvider{}, cfg)

	// Any request runs through CORS middleware; header should reflect origin.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}
}

func TestRecipesEndpoints_EndToEnd(t *testing.T) {
	r := newRouter(t, newTestDB(t))

	// Full catalog in index order.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/recipes = %d: %s", w.Code, w.Body.String())
	}
	var listing struct {
		Items      []catalog.ListItem `json:"items"`
		TotalCount int                `json:"total_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if listing.TotalCount != 3 || listing.Items[0].Slug != "pandekager" {
		t.Fatalf("unexpected listing: %+v", listing)
	}

	// Time bound excludes hour-denominated recipes.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/recipes?timeMax=30", nil)
	r.ServeHTTP(w, req)
	if err := json.Unmarshal(w.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if listing.TotalCount != 1 || listing.Items[0].Slug != "pandekager" {
		t.Fatalf("timeMax filter unexpected: %+v", listing)
	}

	// Detail and 404.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/recipes/pandekager", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/recipes/pandekager = %d", w.Code)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/recipes/ukendt", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown slug expected 404, got %d", w.Code)
	}
}

func TestReviewFlow_EndToEnd(t *testing.T) {
	r := newRouter(t, newTestDB(t))

	submit := func(anonID, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Anonymous-ID", anonID)
		r.ServeHTTP(w, req)
		return w
	}

	// Submit anonymously.
	w := submit("a1", `{"recipeSlug":"pandekager","rating":4,"comment":"fin"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /api/reviews = %d: %s", w.Code, w.Body.String())
	}
	var created domain.Review
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode review: %v", err)
	}

	// Out-of-range rating is rejected with the validation code.
	w = submit("a1", `{"recipeSlug":"pandekager","rating":6}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid rating expected 400, got %d", w.Code)
	}

	// No identity at all → 401.
	w = submit("", `{"recipeSlug":"pandekager","rating":3}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing identity expected 401, got %d", w.Code)
	}

	// Listing shows the review.
	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reviews?recipeSlug=pandekager", nil)
	r.ServeHTTP(w2, req)
	var reviews []domain.Review
	if err := json.Unmarshal(w2.Body.Bytes(), &reviews); err != nil || len(reviews) != 1 {
		t.Fatalf("listing unexpected: %v %s", err, w2.Body.String())
	}

	// Stats aggregate.
	w2 = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/reviews/stats?recipeSlug=pandekager", nil)
	r.ServeHTTP(w2, req)
	var stats struct {
		AverageRating float64 `json:"average_rating"`
		TotalReviews  int64   `json:"total_reviews"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.AverageRating != 4 || stats.TotalReviews != 1 {
		t.Fatalf("stats unexpected: %+v", stats)
	}

	// Delete by a stranger is forbidden; by the owner succeeds.
	w2 = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/reviews/"+created.ID, nil)
	req.Header.Set("X-Anonymous-ID", "someone-else")
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusForbidden {
		t.Fatalf("stranger delete expected 403, got %d", w2.Code)
	}
	w2 = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/reviews/"+created.ID, nil)
	req.Header.Set("X-Anonymous-ID", "a1")
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("owner delete expected 200, got %d", w2.Code)
	}
	var deleted map[string]string
	if err := json.Unmarshal(w2.Body.Bytes(), &deleted); err != nil || deleted["status"] != "deleted" {
		t.Fatalf("delete body: %v %s", err, w2.Body.String())
	}
}

func TestReviewSubmission_IdempotentReplay(t *testing.T) {
	r := newRouter(t, newTestDB(t))

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/reviews",
			bytes.NewBufferString(`{"recipeSlug":"pandekager","rating":5}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Anonymous-ID", "a1")
		req.Header.Set(middleware.HeaderIdempotencyKey, "retry-1")
		r.ServeHTTP(w, req)
		return w
	}

	first := send()
	if first.Code != http.StatusCreated {
		t.Fatalf("first submission = %d: %s", first.Code, first.Body.String())
	}
	second := send()
	if second.Code != http.StatusCreated {
		t.Fatalf("replay = %d: %s", second.Code, second.Body.String())
	}

	var a, b domain.Review
	if err := json.Unmarshal(first.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode first: %v", err)
	}
	if err := json.Unmarshal(second.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode second: %v", err)
	}
	if a.ID != b.ID {
		t.Fatalf("replay must return the original review: %s vs %s", a.ID, b.ID)
	}
}

func TestLogin_SetsSessionCookieAndAdoptsReviews(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(t, db)

	// Anonymous review before sign-in.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews",
		bytes.NewBufferString(`{"recipeSlug":"pandekager","rating":4}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Anonymous-ID", "a1")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("anonymous review = %d", w.Code)
	}

	// Login carrying the anonymous id.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"email":"kok@example.dk","password":"hemmelig!","anonymousId":"a1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/auth/login = %d: %s", w.Code, w.Body.String())
	}
	cookieSet := false
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CookieAccessToken && c.Value != "" && c.HttpOnly {
			cookieSet = true
		}
	}
	if !cookieSet {
		t.Fatalf("expected HttpOnly session cookie, got %v", w.Result().Cookies())
	}

	// The review now belongs to the account.
	var n int64
	if err := db.Model(&domain.Review{}).Where("user_id = ?", "u1").Count(&n).Error; err != nil || n != 1 {
		t.Fatalf("adoption failed: err=%v n=%d", err, n)
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")) // 12 bytes
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// "/" and "" should mount at root
	root1 := groupWithPrefix(r, "/")
	root1.GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	root2 := groupWithPrefix(r, "")
	root2.GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })

	// non-root prefix
	api := groupWithPrefix(r, "/api")
	api.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	// Hit all three
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/one", nil)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "one" {
		t.Fatalf("GET /one got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/two", nil)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "two" {
		t.Fatalf("GET /two got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("GET /api/ping got %d %q", rec.Code, rec.Body.String())
	}
}

// Smoke test that a request traverses idempotency + ratelimit + otel + security headers pipeline.
func TestPipeline_Smoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := testConfig()
	cfg.Security = config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: time.Hour} // enabled (but only set on https)
	RegisterRoutes(r, newTestDB(t), testCatalog(), fakeProvider{}, cfg)

	// Any request goes through the middleware stack
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	// simulate https so HSTS could be eligible if middleware checks scheme
	req.URL.Scheme = "https"
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("pipeline GET /health = %d", w.Code)
	}
	// RequestID header should be present (from RequestID middleware)
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
}
