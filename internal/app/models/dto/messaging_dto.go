package dto

import "time"

// SendMessageRequest is the body for POST /conversations/:id/messages
// and POST /students/:id/messages.
type SendMessageRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

// MessageResponse is the API representation of one message
type MessageResponse struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"senderId"`
	SenderName string    `json:"senderName"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sentAt"`
}

// ConversationResponse is the API representation of a conversation header
type ConversationResponse struct {
	ID            int64     `json:"id"`
	StudentID     int64     `json:"studentId"`
	StudentName   string    `json:"studentName"`
	RegNo         string    `json:"regNo"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	Unread        bool      `json:"unread"`
}
