package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smagen/go-recipe-backend/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(&domain.User{}, &domain.Review{}, &domain.Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) *domain.User {
	t.Helper()
	u := &domain.User{ID: id, Email: id + "@example.dk"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestCreateAndGetReview_BothAxes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, uuid.NewString())

	identified, err := CreateReview(ctx, db, "pandekager", &u.ID, nil, 5, nil)
	if err != nil {
		t.Fatalf("create identified: %v", err)
	}
	anon := "client-1"
	if _, err := CreateReview(ctx, db, "pandekager", nil, &anon, 3, nil); err != nil {
		t.Fatalf("create anonymous: %v", err)
	}

	got, err := GetReviewByUser(ctx, db, "pandekager", u.ID)
	if err != nil || got.ID != identified.ID {
		t.Fatalf("GetReviewByUser: %v (got %+v)", err, got)
	}
	if _, err := GetReviewByAnonymous(ctx, db, "pandekager", "client-1"); err != nil {
		t.Fatalf("GetReviewByAnonymous: %v", err)
	}
	if _, err := GetReviewByUser(ctx, db, "pandekager", "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListReviewsByRecipe_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	old := &domain.Review{ID: "old", RecipeSlug: "s", Rating: 3, CreatedAt: time.Now().UTC().Add(-time.Hour)}
	anon := "a"
	old.AnonymousID = &anon
	if err := db.Create(old).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	anon2 := "b"
	if _, err := CreateReview(ctx, db, "s", nil, &anon2, 5, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := ListReviewsByRecipe(ctx, db, "s")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID == "old" {
		t.Fatalf("expected newest first, got %+v", got)
	}
}

func TestUpdateReview_InPlace(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	anon := "c"
	r, err := CreateReview(ctx, db, "s", nil, &anon, 2, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	comment := "bedre end ventet"
	if err := UpdateReview(ctx, db, r.ID, 4, &comment); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := GetReview(ctx, db, r.ID)
	if got.Rating != 4 || got.Comment == nil || *got.Comment != comment {
		t.Fatalf("update not applied: %+v", got)
	}
	if !got.UpdatedAt.After(r.UpdatedAt) {
		t.Fatalf("UpdatedAt not bumped: %v <= %v", got.UpdatedAt, r.UpdatedAt)
	}
	if err := UpdateReview(ctx, db, "missing", 1, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReassignReviewToUser_ClearsAnonymousAxis(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, uuid.NewString())
	anon := "client-9"
	r, err := CreateReview(ctx, db, "s", nil, &anon, 3, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := ReassignReviewToUser(ctx, db, r.ID, u.ID, 5, nil); err != nil {
		t.Fatalf("reassign: %v", err)
	}
	got, _ := GetReview(ctx, db, r.ID)
	if got.UserID == nil || *got.UserID != u.ID {
		t.Fatalf("user_id not populated: %+v", got)
	}
	if got.AnonymousID != nil {
		t.Fatalf("anonymous_id not cleared: %+v", got)
	}
	if got.Rating != 5 {
		t.Fatalf("rating not applied: %d", got.Rating)
	}
}

func TestDeleteReviewsByUser_LeavesOthers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, uuid.NewString())
	other := seedUser(t, db, uuid.NewString())

	if _, err := CreateReview(ctx, db, "a", &u.ID, nil, 5, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateReview(ctx, db, "b", &u.ID, nil, 4, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateReview(ctx, db, "a", &other.ID, nil, 1, nil); err != nil {
		t.Fatal(err)
	}

	n, err := DeleteReviewsByUser(ctx, db, u.ID)
	if err != nil || n != 2 {
		t.Fatalf("DeleteReviewsByUser = (%d, %v); want (2, nil)", n, err)
	}
	var left int64
	db.Model(&domain.Review{}).Count(&left)
	if left != 1 {
		t.Fatalf("other users' reviews must survive, left=%d", left)
	}
}

func TestGetReviewStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Empty recipe: zero aggregate, no error.
	s, err := GetReviewStats(ctx, db, "empty")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if s.TotalReviews != 0 || s.AverageRating != 0 {
		t.Fatalf("zero aggregate expected, got %+v", s)
	}

	for i, rating := range []int{5, 4, 4, 2} {
		anon := fmt.Sprintf("c%d", i)
		if _, err := CreateReview(ctx, db, "s", nil, &anon, rating, nil); err != nil {
			t.Fatal(err)
		}
	}
	s, err = GetReviewStats(ctx, db, "s")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if s.TotalReviews != 4 {
		t.Fatalf("total = %d; want 4", s.TotalReviews)
	}
	// (5+4+4+2)/4 = 3.75 -> 3.8 after one-decimal rounding.
	if s.AverageRating != 3.8 {
		t.Fatalf("average = %v; want 3.8", s.AverageRating)
	}
	if s.RatingCounts[4] != 2 || s.RatingCounts[1] != 0 {
		t.Fatalf("counts wrong: %v", s.RatingCounts)
	}
}

func TestIdempotency_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := GetIdempotency(ctx, db, "user:u1", "s", "k1", now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	rec, err := CreateIdempotency(ctx, db, "user:u1", "s", "k1", "rev-1", 200, time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := GetIdempotency(ctx, db, "user:u1", "s", "k1", now)
	if err != nil || got.ID != rec.ID || got.ReviewID != "rev-1" {
		t.Fatalf("get: %v (%+v)", err, got)
	}

	if _, err := CreateIdempotency(ctx, db, "user:u1", "s", "k1", "rev-2", 200, time.Hour); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// Expired records are invisible.
	if _, err := CreateIdempotency(ctx, db, "user:u2", "s", "k2", "rev-3", 200, -time.Minute); err != nil {
		t.Fatalf("create expired: %v", err)
	}
	if _, err := GetIdempotency(ctx, db, "user:u2", "s", "k2", now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired record must be invisible, got %v", err)
	}
}
