package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academica/academica-backend/internal/model"
)

// MessageRepository handles message and recipient data access.
type MessageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// Create inserts a message and its recipient rows in one transaction.
func (r *MessageRepository) Create(ctx context.Context, m *model.Message, recipientIDs []int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx,
		`INSERT INTO messages (sender_id, subject, body) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		m.SenderID, m.Subject, m.Body,
	).Scan(&m.ID, &m.CreatedAt); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		rows = append(rows, []interface{}{m.ID, id})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"message_recipients"},
		[]string{"message_id", "student_id"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListForStudentPaginated retrieves a student's inbox, newest first.
func (r *MessageRepository) ListForStudentPaginated(ctx context.Context, studentID, limit, offset int) ([]model.StudentMessage, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM message_recipients WHERE student_id = $1`, studentID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT m.id, m.sender_id, m.subject, m.body, m.created_at, p.name, mr.read_at
		 FROM message_recipients mr
		 JOIN messages m ON m.id = mr.message_id
		 JOIN professors p ON p.id = m.sender_id
		 WHERE mr.student_id = $1
		 ORDER BY m.created_at DESC LIMIT $2 OFFSET $3`,
		studentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var messages []model.StudentMessage
	for rows.Next() {
		var sm model.StudentMessage
		if err := rows.Scan(&sm.ID, &sm.SenderID, &sm.Subject, &sm.Body, &sm.CreatedAt, &sm.SenderName, &sm.ReadAt); err != nil {
			return nil, 0, err
		}
		messages = append(messages, sm)
	}
	return messages, total, rows.Err()
}

// ListSentPaginated retrieves a professor's sent messages, newest first,
// with recipient counts.
func (r *MessageRepository) ListSentPaginated(ctx context.Context, professorID, limit, offset int) ([]model.Message, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE sender_id = $1`, professorID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, sender_id, subject, body, created_at
		 FROM messages WHERE sender_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		professorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.Subject, &m.Body, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		messages = append(messages, m)
	}
	return messages, total, rows.Err()
}

// MarkRead stamps a recipient row. Reports whether a row matched, so the
// caller can distinguish "not your message" from success. Re-reading does
// not move the original timestamp.
func (r *MessageRepository) MarkRead(ctx context.Context, messageID, studentID int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE message_recipients SET read_at = COALESCE(read_at, CURRENT_TIMESTAMP)
		 WHERE message_id = $1 AND student_id = $2`,
		messageID, studentID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UnreadCount returns the number of unread messages in a student's inbox.
func (r *MessageRepository) UnreadCount(ctx context.Context, studentID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM message_recipients WHERE student_id = $1 AND read_at IS NULL`, studentID,
	).Scan(&count)
	return count, err
}
