package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tailorwise/tailorwise/internal/app/models"
	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
)

// MessagingRepository handles conversations and messages
type MessagingRepository struct {
	db *pgxpool.Pool
}

// NewMessagingRepository creates a new MessagingRepository
func NewMessagingRepository(db *pgxpool.Pool) *MessagingRepository {
	return &MessagingRepository{db: db}
}

// GetOrCreateConversation returns the student's conversation, creating it
// on first use. One conversation per student.
func (r *MessagingRepository) GetOrCreateConversation(ctx context.Context, studentID int64) (*models.Conversation, error) {
	c := &models.Conversation{}
	err := r.db.QueryRow(ctx, `
		INSERT INTO conversations (student_id, created_at, last_message_at, student_read, admin_read)
		VALUES ($1, NOW(), NOW(), TRUE, TRUE)
		ON CONFLICT (student_id) DO UPDATE SET student_id = EXCLUDED.student_id
		RETURNING id, student_id, created_at, last_message_at, student_read, admin_read`,
		studentID).
		Scan(&c.ID, &c.StudentID, &c.CreatedAt, &c.LastMessageAt, &c.StudentRead, &c.AdminRead)
	if err != nil {
		return nil, fmt.Errorf("error getting or creating conversation: %w", err)
	}
	return c, nil
}

// GetConversationByID retrieves a conversation header
func (r *MessagingRepository) GetConversationByID(ctx context.Context, id int64) (*models.Conversation, error) {
	c := &models.Conversation{}
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, created_at, last_message_at, student_read, admin_read
		FROM conversations WHERE id = $1`, id).
		Scan(&c.ID, &c.StudentID, &c.CreatedAt, &c.LastMessageAt, &c.StudentRead, &c.AdminRead)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}
	return c, nil
}

// GetConversationByStudent retrieves a student's conversation, if any
func (r *MessagingRepository) GetConversationByStudent(ctx context.Context, studentID int64) (*models.Conversation, error) {
	c := &models.Conversation{}
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, created_at, last_message_at, student_read, admin_read
		FROM conversations WHERE student_id = $1`, studentID).
		Scan(&c.ID, &c.StudentID, &c.CreatedAt, &c.LastMessageAt, &c.StudentRead, &c.AdminRead)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}
	return c, nil
}

// ListConversations returns all conversations with their student, most
// recently active first.
func (r *MessagingRepository) ListConversations(ctx context.Context) ([]*models.Conversation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.student_id, c.created_at, c.last_message_at, c.student_read, c.admin_read,
		       s.reg_no, u.first_name, u.last_name
		FROM conversations c
		JOIN students s ON s.id = c.student_id
		JOIN users u ON u.id = s.user_id
		ORDER BY c.last_message_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*models.Conversation
	for rows.Next() {
		c := &models.Conversation{Student: &models.Student{User: &models.User{}}}
		if err := rows.Scan(&c.ID, &c.StudentID, &c.CreatedAt, &c.LastMessageAt,
			&c.StudentRead, &c.AdminRead,
			&c.Student.RegNo, &c.Student.User.FirstName, &c.Student.User.LastName); err != nil {
			return nil, fmt.Errorf("error scanning conversation row: %w", err)
		}
		c.Student.ID = c.StudentID
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

// AppendMessage adds a message and updates the conversation's activity
// time and read flags. fromStudent controls which side's flag resets.
func (r *MessagingRepository) AppendMessage(ctx context.Context, m *models.Message, fromStudent bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if m.SentAt.IsZero() {
		m.SentAt = time.Now()
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, body, sent_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		m.ConversationID, m.SenderID, m.Body, m.SentAt).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}

	// The sending side has read the thread, the other side has not
	studentRead := fromStudent
	adminRead := !fromStudent
	cmdTag, err := tx.Exec(ctx, `
		UPDATE conversations
		SET last_message_at = $1, student_read = $2, admin_read = $3
		WHERE id = $4`,
		m.SentAt, studentRead, adminRead, m.ConversationID)
	if err != nil {
		return fmt.Errorf("error updating conversation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConversationNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing message: %w", err)
	}
	return nil
}

// ListMessages returns a conversation's messages with senders, oldest first
func (r *MessagingRepository) ListMessages(ctx context.Context, conversationID int64) ([]*models.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.conversation_id, m.sender_id, m.body, m.sent_at,
		       u.first_name, u.last_name
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.conversation_id = $1
		ORDER BY m.sent_at, m.id`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		m := &models.Message{Sender: &models.User{}}
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.SentAt,
			&m.Sender.FirstName, &m.Sender.LastName); err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		m.Sender.ID = m.SenderID
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MarkRead sets the read flag for one side of a conversation
func (r *MessagingRepository) MarkRead(ctx context.Context, conversationID int64, studentSide bool) error {
	column := "admin_read"
	if studentSide {
		column = "student_read"
	}
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE conversations SET `+column+` = TRUE WHERE id = $1`, conversationID)
	if err != nil {
		return fmt.Errorf("error marking conversation read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConversationNotFound
	}
	return nil
}
