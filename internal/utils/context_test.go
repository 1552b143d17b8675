package utils

import (
	"context"
	"testing"

	"github.com/processflow/server/models"
)

func TestWithUserAndGetUserFromContext(t *testing.T) {
	user := &models.User{ID: "3f1d", Username: "alice", Role: models.RoleUser}

	ctx := WithUser(context.Background(), user)

	got, ok := GetUserFromContext(ctx)
	if !ok {
		t.Fatal("expected user to be present in context")
	}
	if got.ID != user.ID {
		t.Errorf("expected user ID %s, got %s", user.ID, got.ID)
	}
}

func TestGetUserFromContext_Missing(t *testing.T) {
	_, ok := GetUserFromContext(context.Background())
	if ok {
		t.Error("expected ok=false for a context without a user")
	}
}

func TestGetUserFromContext_NilUser(t *testing.T) {
	ctx := WithUser(context.Background(), nil)

	_, ok := GetUserFromContext(ctx)
	if ok {
		t.Error("expected ok=false for a nil user in context")
	}
}

func TestGetUserFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserCtxKey, "not a user")

	_, ok := GetUserFromContext(ctx)
	if ok {
		t.Error("expected ok=false for a value of the wrong type")
	}
}
