package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vbote/auth-server/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

const sessionColumns = "id, user_id, token, ip_address, created_at, active"

type SessionRepository struct {
	db DB
}

func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE token = $1`

	session, err := scanSession(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get session by token: %w", err)
	}

	return session, nil
}

func (r *SessionRepository) Create(ctx context.Context, session model.Session) (model.Session, error) {
	query := `INSERT INTO sessions (id, user_id, token, ip_address, created_at, active)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + sessionColumns

	savedSession, err := scanSession(r.db.QueryRow(ctx, query,
		session.ID, session.UserID, session.Token, session.IPAddress,
		session.CreatedAt, session.Active,
	))
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return savedSession, nil
}

func (r *SessionRepository) Update(ctx context.Context, session model.Session) (model.Session, error) {
	query := `UPDATE sessions SET active = $2 WHERE id = $1 RETURNING ` + sessionColumns

	updatedSession, err := scanSession(r.db.QueryRow(ctx, query, session.ID, session.Active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to update session: %w", err)
	}

	return updatedSession, nil
}

func (r *SessionRepository) FindAllActive(ctx context.Context) ([]model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE active ORDER BY created_at`

	return r.querySessions(ctx, query)
}

func (r *SessionRepository) FindAllActiveByUserID(ctx context.Context, userID uuid.UUID) ([]model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE active AND user_id = $1 ORDER BY created_at`

	return r.querySessions(ctx, query, userID)
}

// DeactivateAllByUserID flips every active session of the user in one
// statement; a concurrent login that commits afterwards stays active.
func (r *SessionRepository) DeactivateAllByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `UPDATE sessions SET active = FALSE WHERE user_id = $1 AND active`

	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate sessions by user id: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *SessionRepository) querySessions(ctx context.Context, query string, args ...any) ([]model.Session, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

func scanSession(row pgx.Row) (model.Session, error) {
	var session model.Session
	err := row.Scan(
		&session.ID, &session.UserID, &session.Token, &session.IPAddress,
		&session.CreatedAt, &session.Active,
	)
	return session, err
}
