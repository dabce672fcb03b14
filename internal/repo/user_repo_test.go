package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/smagen/go-recipe-backend/internal/domain"
)

func TestUpsertUser_InsertThenRefresh(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	id := uuid.NewString()

	if err := UpsertUser(ctx, db, &domain.User{ID: id, Email: "a@b.dk"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	name := "mette"
	if err := UpsertUser(ctx, db, &domain.User{ID: id, Email: "ny@b.dk", Username: &name}); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	got, err := GetUser(ctx, db, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "ny@b.dk" || got.Username == nil || *got.Username != "mette" {
		t.Fatalf("upsert did not refresh fields: %+v", got)
	}

	var n int64
	db.Model(&domain.User{}).Count(&n)
	if n != 1 {
		t.Fatalf("upsert must not duplicate rows, n=%d", n)
	}
}

func TestUpdateUserProfile(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, uuid.NewString())

	avatar := "https://cdn.example.dk/a.png"
	if err := UpdateUserProfile(ctx, db, u.ID, nil, &avatar); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := GetUser(ctx, db, u.ID)
	if got.AvatarURL == nil || *got.AvatarURL != avatar {
		t.Fatalf("avatar not updated: %+v", got)
	}

	if err := UpdateUserProfile(ctx, db, "missing", nil, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, uuid.NewString())

	if err := DeleteUser(ctx, db, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := GetUser(ctx, db, u.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := DeleteUser(ctx, db, u.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete should be ErrNotFound, got %v", err)
	}
}
