package models

import (
	"time"
)

// Conversation is the single messaging thread between one student and
// the admin team. Read flags are tracked per side.
type Conversation struct {
	ID            int64      `json:"id" db:"id"`
	StudentID     int64      `json:"studentId" db:"student_id"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	LastMessageAt time.Time  `json:"lastMessageAt" db:"last_message_at"`
	StudentRead   bool       `json:"studentRead" db:"student_read"`
	AdminRead     bool       `json:"adminRead" db:"admin_read"`
	Student       *Student   `json:"student,omitempty"`  // Relation, no db tag
	Messages      []*Message `json:"messages,omitempty"` // Relation, no db tag
}

// Message is a single message within a conversation
type Message struct {
	ID             int64     `json:"id" db:"id"`
	ConversationID int64     `json:"conversationId" db:"conversation_id"`
	SenderID       int64     `json:"senderId" db:"sender_id"`
	Body           string    `json:"body" db:"body"`
	SentAt         time.Time `json:"sentAt" db:"sent_at"`
	Sender         *User     `json:"sender,omitempty"` // Relation, no db tag
}
