package api

import (
	"context"
	"net/http"
	"time"
)

// Conversation is one chat thread within a bucket.
type Conversation struct {
	ID        string    `json:"id"`
	BucketID  string    `json:"bucket_id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is one stored turn of a conversation.
type Message struct {
	ID             string         `json:"id"`
	ConversationID string         `json:"conversation_id"`
	Role           string         `json:"role"`
	Content        string         `json:"content"`
	Sources        []Source       `json:"sources,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Conversations lists a bucket's chat threads, most recently updated first.
func (c *Client) Conversations(ctx context.Context, bucketID string) ([]Conversation, error) {
	var out struct {
		Conversations []Conversation `json:"conversations"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/buckets/"+bucketID+"/conversations", nil, &out); err != nil {
		return nil, err
	}
	return out.Conversations, nil
}

// ConversationMessages returns a conversation's turns in chronological order.
func (c *Client) ConversationMessages(ctx context.Context, conversationID string) ([]Message, error) {
	var out struct {
		Messages []Message `json:"messages"`
	}
	path := "/api/buckets/conversations/" + conversationID + "/messages"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// RenameConversation sets a conversation's title.
func (c *Client) RenameConversation(ctx context.Context, conversationID, title string) error {
	path := "/api/buckets/conversations/" + conversationID
	return c.doJSON(ctx, http.MethodPatch, path, map[string]string{"title": title}, nil)
}

// DeleteConversation removes a conversation and all its messages.
func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	path := "/api/buckets/conversations/" + conversationID
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
