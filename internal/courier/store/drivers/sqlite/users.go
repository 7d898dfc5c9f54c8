package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/courier/internal/courier/domain"
	"github.com/aussiebroadwan/courier/pkg/idx"
)

type usersRepo struct {
	q dbtx
}

const (
	sqlCreateUser = `
		INSERT INTO users (username, password_hash, first_name, last_name, phone, join_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	sqlGetUserByUsername = `
		SELECT username, password_hash, first_name, last_name, phone, join_at, last_login_at
		FROM   users
		WHERE  username = ?
		LIMIT  1`

	sqlListUsers = `
		SELECT username, first_name, last_name, phone
		FROM   users
		ORDER  BY username`

	sqlTouchLastLogin = `
		UPDATE users
		SET    last_login_at = ?
		WHERE  username = ?
		RETURNING last_login_at`

	sqlListInbox = `
		SELECT m.id, m.body, m.sent_at, m.read_at,
		       u.username, u.first_name, u.last_name, u.phone
		FROM   messages m
		JOIN   users u ON m.from_username = u.username
		WHERE  m.to_username = ?
		ORDER  BY m.id`

	sqlListOutbox = `
		SELECT m.id, m.body, m.sent_at, m.read_at,
		       u.username, u.first_name, u.last_name, u.phone
		FROM   messages m
		JOIN   users u ON m.to_username = u.username
		WHERE  m.from_username = ?
		ORDER  BY m.id`
)

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, sqlCreateUser,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.JoinAt)
	return mapErr(err)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var (
		u         domain.User
		lastLogin sql.NullTime
	)
	err := r.q.QueryRowContext(ctx, sqlGetUserByUsername, username).Scan(
		&u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone,
		&u.JoinAt, &lastLogin,
	)
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	u.LastLoginAt = mapNullTimePtr(lastLogin)
	return u, nil
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.q.QueryContext(ctx, sqlListUsers)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.Username, &p.FirstName, &p.LastName, &p.Phone); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *usersRepo) TouchLastLogin(ctx context.Context, username string, at time.Time) (time.Time, error) {
	var stamped time.Time
	err := r.q.QueryRowContext(ctx, sqlTouchLastLogin, at, username).Scan(&stamped)
	if err != nil {
		return time.Time{}, mapErr(err)
	}
	return stamped, nil
}

func (r *usersRepo) ListInbox(ctx context.Context, username string) ([]domain.InboxEntry, error) {
	rows, err := r.q.QueryContext(ctx, sqlListInbox, username)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.InboxEntry
	for rows.Next() {
		var (
			e      domain.InboxEntry
			id     string
			readAt sql.NullTime
		)
		err := rows.Scan(&id, &e.Body, &e.SentAt, &readAt,
			&e.FromUser.Username, &e.FromUser.FirstName, &e.FromUser.LastName, &e.FromUser.Phone)
		if err != nil {
			return nil, err
		}
		e.ID = idx.ID(id)
		e.ReadAt = mapNullTimePtr(readAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *usersRepo) ListOutbox(ctx context.Context, username string) ([]domain.OutboxEntry, error) {
	rows, err := r.q.QueryContext(ctx, sqlListOutbox, username)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.OutboxEntry
	for rows.Next() {
		var (
			e      domain.OutboxEntry
			id     string
			readAt sql.NullTime
		)
		err := rows.Scan(&id, &e.Body, &e.SentAt, &readAt,
			&e.ToUser.Username, &e.ToUser.FirstName, &e.ToUser.LastName, &e.ToUser.Phone)
		if err != nil {
			return nil, err
		}
		e.ID = idx.ID(id)
		e.ReadAt = mapNullTimePtr(readAt)
		out = append(out, e)
	}
	return out, rows.Err()
}
