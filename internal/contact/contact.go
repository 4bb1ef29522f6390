package contact

import (
	"context"
	"time"
)

// Message is one contact-form submission. New messages start Pending and
// unread; triage happens out of band.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats counts messages by triage state.
type Stats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Unread  int `json:"unread"`
}

type Repository interface {
	Insert(ctx context.Context, m *Message) error
	ListAll(ctx context.Context) ([]Message, error)
	Count(ctx context.Context) (Stats, error)
}
