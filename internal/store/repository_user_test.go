package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/processflow/server/internal/logger"
	"github.com/processflow/server/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l, errorClassifier: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userColumns() []string {
	return []string{"id", "username", "email", "password_hash", "role", "name", "department", "is_active", "last_login", "created_at"}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Username: "Alice",
		Email:    "A@x.com",
		Role:     models.RoleUser,
		Name:     "alice",
	}

	now := time.Now()

	rows := sqlmock.
		NewRows(userColumns()).
		AddRow("3f1d", "alice", "a@x.com", "$2a$12$hash", "user", "alice", "", true, nil, now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "alice", "a@x.com", sqlmock.AnyArg(), models.RoleUser, "alice", "", true).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user, "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "3f1d" {
		t.Errorf("expected ID=3f1d, got %s", created.ID)
	}
	if created.Username != "alice" {
		t.Errorf("expected lowercased username alice, got %s", created.Username)
	}
	if created.LastLogin != nil {
		t.Errorf("expected nil LastLogin for a new user, got %v", created.LastLogin)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Username: "alice", Email: "a@x.com"}

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, user, "secret1")
	if !errors.Is(err, ErrCredentialAlreadyTaken) {
		t.Fatalf("expected ErrCredentialAlreadyTaken, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Username: "alice", Email: "a@x.com"}

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, user, "secret1")
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByUsername_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(userColumns()).
		AddRow("3f1d", "alice", "a@x.com", "$2a$12$hash", "user", "Alice Doe", "QA", true, now, now)

	mock.ExpectQuery("SELECT id").
		WithArgs("alice").
		WillReturnRows(rows)

	found, err := repo.FindUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Username != "alice" {
		t.Errorf("expected username alice, got %s", found.Username)
	}
	if found.LastLogin == nil {
		t.Error("expected non-nil LastLogin")
	}
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id").
		WithArgs("alice").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByUsername(ctx, "alice")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByUsername_UnexpectedError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id").
		WithArgs("alice").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindUserByUsername(ctx, "alice")
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id").
		WithArgs("a@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(ctx, "a@x.com")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(userColumns()).
		AddRow("3f1d", "alice", "a@x.com", "$2a$12$hash", "admin", "Alice Doe", "", true, nil, now)

	mock.ExpectQuery("SELECT id").
		WithArgs("3f1d").
		WillReturnRows(rows)

	found, err := repo.FindUserByID(ctx, "3f1d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Role != models.RoleAdmin {
		t.Errorf("expected role admin, got %s", found.Role)
	}
}

func TestUpdatePassword_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs("3f1d", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(ctx, "3f1d", "newsecret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdatePassword_NoRows(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs("missing", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(ctx, "missing", "newsecret")
	if !errors.Is(err, ErrNothingUpdated) {
		t.Fatalf("expected ErrNothingUpdated, got %v", err)
	}
}

func TestTouchLastLogin_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs("3f1d").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.TouchLastLogin(ctx, "3f1d"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerifyPassword(t *testing.T) {
	repo, _, db := newTestUserRepo(t)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{PasswordHash: string(hash)}

	if !repo.VerifyPassword(user, "secret1") {
		t.Error("expected correct password to verify")
	}
	if repo.VerifyPassword(user, "wrong") {
		t.Error("expected wrong password to fail verification")
	}
}
