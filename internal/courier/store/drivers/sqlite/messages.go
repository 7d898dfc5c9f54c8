package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/courier/internal/courier/domain"
	"github.com/aussiebroadwan/courier/pkg/idx"
)

type messagesRepo struct {
	q dbtx
}

const (
	sqlCreateMessage = `
		INSERT INTO messages (id, from_username, to_username, body, sent_at, read_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	sqlGetMessageByID = `
		SELECT id, from_username, to_username, body, sent_at, read_at
		FROM   messages
		WHERE  id = ?
		LIMIT  1`

	// Conditional on read_at still being null: re-marking an already-read
	// message must not move the stored timestamp.
	sqlMarkMessageRead = `
		UPDATE messages
		SET    read_at = ?
		WHERE  id = ? AND read_at IS NULL`
)

func (r *messagesRepo) CreateMessage(ctx context.Context, m domain.Message) error {
	_, err := r.q.ExecContext(ctx, sqlCreateMessage,
		m.ID.String(), m.FromUsername, m.ToUsername, m.Body, m.SentAt, mapOptionalTime(m.ReadAt))
	return mapErr(err)
}

func (r *messagesRepo) GetMessageByID(ctx context.Context, id idx.ID) (domain.Message, error) {
	var (
		m      domain.Message
		rawID  string
		readAt sql.NullTime
	)
	err := r.q.QueryRowContext(ctx, sqlGetMessageByID, id.String()).Scan(
		&rawID, &m.FromUsername, &m.ToUsername, &m.Body, &m.SentAt, &readAt,
	)
	if err != nil {
		return domain.Message{}, mapErr(err)
	}
	m.ID = idx.ID(rawID)
	m.ReadAt = mapNullTimePtr(readAt)
	return m, nil
}

func (r *messagesRepo) MarkMessageRead(ctx context.Context, id idx.ID, at time.Time) (bool, error) {
	res, err := r.q.ExecContext(ctx, sqlMarkMessageRead, at, id.String())
	if err != nil {
		return false, mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
