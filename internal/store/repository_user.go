package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"

	"github.com/processflow/server/internal/logger"
	"github.com/processflow/server/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation, lookup, and credential updates against
// the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser hashes the raw password, assigns a new UUID, and persists the
// user record. The INSERT returns all columns via a RETURNING clause, so the
// caller receives the canonical database representation of the new account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrCredentialAlreadyTaken].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User, rawPassword string) (models.User, error) {
	log := logger.FromContext(ctx)

	passwordHash, err := hashPassword(rawPassword)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: hashing failed")
		return models.User{}, err
	}

	user.Normalize()
	user.ID = uuid.NewString()
	user.IsActive = true

	row := r.db.QueryRowContext(ctx, createUser,
		user.ID, user.Username, user.Email, passwordHash, user.Role, user.Name, user.Department, user.IsActive)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("error: user was not created")

		switch {
		case postgresError(err) == pgerrcode.UniqueViolation:
			return models.User{}, ErrCredentialAlreadyTaken
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByUsername retrieves the user record whose username matches the
// given (already lowercased) value.
//
// Error handling:
//   - Empty result set → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, findUserByUsername, username)
}

// FindUserByEmail retrieves the user record whose email matches the given
// (already lowercased) value. Failure semantics match FindUserByUsername.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, findUserByEmail, email)
}

// FindUserByID retrieves the user record with the given ID. Failure
// semantics match FindUserByUsername.
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findUser(ctx, findUserByID, id)
}

func (r *userRepository) findUser(ctx context.Context, query string, arg string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, arg)

	found, err := scanUser(row)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows), postgresError(err) == pgerrcode.NoDataFound:
			return models.User{}, ErrNoUserWasFound
		default:
			log.Err(err).Str("func", "*userRepository.findUser").Msg("error: user lookup failed")
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return found, nil
}

// UpdatePassword re-hashes rawPassword with a fresh salt and replaces the
// stored hash of the user with the given ID. Returns [ErrNothingUpdated]
// when no row matches the ID.
func (r *userRepository) UpdatePassword(ctx context.Context, id string, rawPassword string) error {
	log := logger.FromContext(ctx)

	passwordHash, err := hashPassword(rawPassword)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error: hashing failed")
		return err
	}

	return r.execOne(ctx, updatePassword, id, passwordHash)
}

// TouchLastLogin sets the user's last_login timestamp to the database clock.
func (r *userRepository) TouchLastLogin(ctx context.Context, id string) error {
	return r.execOne(ctx, touchLastLogin, id)
}

// VerifyPassword reports whether rawPassword matches the user's stored
// bcrypt hash.
func (r *userRepository) VerifyPassword(user models.User, rawPassword string) bool {
	return comparePassword(user.PasswordHash, rawPassword)
}

// execOne executes an UPDATE expected to affect exactly one row.
func (r *userRepository) execOne(ctx context.Context, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.execOne").Msg("error: executing statement")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNothingUpdated
	}

	return nil
}

// scanUser reads a full users-table row into a models.User.
func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var lastLogin sql.NullTime

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Role, &user.Name, &user.Department, &user.IsActive,
		&lastLogin, &user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}

	return user, nil
}
