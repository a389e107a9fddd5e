package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/vineetpuranik/live-bootcamp-project/internal/domain"
	"github.com/vineetpuranik/live-bootcamp-project/internal/infrastructure/hash"
	"github.com/vineetpuranik/live-bootcamp-project/internal/infrastructure/postgres/migrations"
)

// Postgres unique_violation error code.
const uniqueViolation = "23505"

// UserStore is the durable relational credential backend. The primary key on
// email makes duplicate registration atomic: concurrent inserts race on the
// constraint and the loser gets a unique violation, mapped to ErrAlreadyExists.
type UserStore struct {
	db     *sql.DB
	hasher *hash.Pool
}

// NewUserStore opens a pgx-backed pool and runs the embedded goose migrations.
func NewUserStore(dsn string, hasher *hash.Pool) (*UserStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.UpContext(context.Background(), db, "."); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &UserStore{db: db, hasher: hasher}, nil
}

func (s *UserStore) Add(ctx context.Context, email domain.Email, password domain.Password, requires2FA bool) error {
	passwordHash, err := s.hasher.Hash(ctx, password.String())
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	query := `INSERT INTO users (email, password_hash, requires_2fa) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, email.String(), passwordHash, requires2FA); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("user %s: %w", email, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *UserStore) Get(ctx context.Context, email domain.Email) (*domain.User, error) {
	query := `SELECT password_hash, requires_2fa FROM users WHERE email = $1`

	u := &domain.User{Email: email}
	err := s.db.QueryRowContext(ctx, query, email.String()).Scan(&u.PasswordHash, &u.Requires2FA)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (s *UserStore) Validate(ctx context.Context, email domain.Email, password domain.Password) error {
	u, err := s.Get(ctx, email)
	if err != nil {
		return err
	}
	if err := s.hasher.Verify(ctx, password.String(), u.PasswordHash); err != nil {
		if errors.Is(err, hash.ErrMismatch) {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("verify password: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *UserStore) Close() error {
	return s.db.Close()
}
