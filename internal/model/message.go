package model

import "time"

// Message is a professor-to-students announcement or note.
type Message struct {
	ID        int       `json:"id"`
	SenderID  int       `json:"sender_id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// StudentMessage is a message as seen by one recipient.
type StudentMessage struct {
	Message
	SenderName string     `json:"sender_name"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
}

// SendMessageRequest is the payload for sending a message to students.
type SendMessageRequest struct {
	RecipientIDs []int  `json:"recipient_ids" binding:"required,min=1,max=500,dive,min=1"`
	Subject      string `json:"subject" binding:"required,min=1,max=200"`
	Body         string `json:"body" binding:"required,min=1,max=10000"`
}
