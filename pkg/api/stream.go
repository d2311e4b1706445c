package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/jutt313/aiveilix-go/pkg/sse"
)

// EventType identifies a chat stream event.
type EventType string

const (
	// EventPhaseChange marks a transition between the thinking and response
	// phases of the assistant's turn.
	EventPhaseChange EventType = "phase_change"
	// EventThinking carries an incremental chunk of reasoning text.
	EventThinking EventType = "thinking"
	// EventResponse carries an incremental chunk of the answer.
	EventResponse EventType = "response"
	// EventContent is an older name for EventResponse still emitted by some
	// deployments. Decoded events are normalized to EventResponse.
	EventContent EventType = "content"
	// EventSearching reports that the server is running a web search.
	EventSearching EventType = "searching"
	// EventDone carries the authoritative final payload for the turn.
	EventDone EventType = "done"
	// EventError reports a server-side failure; the stream ends after it.
	EventError EventType = "error"
)

// Source is one citation attached to an answer. The server emits several
// source shapes (file chunks, file analyses, web results); fields not
// applicable to a given shape are left zero.
type Source struct {
	Type       string  `json:"type,omitempty"`
	FileID     string  `json:"file_id,omitempty"`
	FileName   string  `json:"file_name,omitempty"`
	ChunkID    string  `json:"chunk_id,omitempty"`
	SummaryID  string  `json:"summary_id,omitempty"`
	URL        string  `json:"url,omitempty"`
	Domain     string  `json:"domain,omitempty"`
	Title      string  `json:"title,omitempty"`
	Topic      string  `json:"topic,omitempty"`
	Quote      string  `json:"quote,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// FileDraft is a document the assistant drafted during a file_draft or
// file_update turn, carried on the done event.
type FileDraft struct {
	Response    string `json:"response"`
	FileName    string `json:"file_name"`
	FileContent string `json:"file_content"`
}

// StreamEvent is one decoded chat stream event, delivered to the OnEvent
// callback as it arrives. Only the fields relevant to Type are populated.
type StreamEvent struct {
	Type           EventType  `json:"type"`
	Phase          string     `json:"phase,omitempty"`
	Content        string     `json:"content,omitempty"`
	Keywords       []string   `json:"keywords,omitempty"`
	Message        string     `json:"message,omitempty"`
	Sources        []Source   `json:"sources,omitempty"`
	ConversationID string     `json:"conversation_id,omitempty"`
	Thinking       string     `json:"thinking,omitempty"`
	FileDraft      *FileDraft `json:"file_draft,omitempty"`
	Err            string     `json:"error,omitempty"`
}

// ChatResult is the reconciled outcome of one chat turn.
type ChatResult struct {
	// Message is the final answer text. When the done event carries a
	// message it replaces anything accumulated from response chunks.
	Message string
	// Thinking is the reasoning text, from the streamed thinking chunks or,
	// when none streamed, from the done event.
	Thinking string
	// Sources are the citations from the done event. Never nil.
	Sources []Source
	// ConversationID identifies the conversation this turn belongs to,
	// taken from the done event when present, otherwise from the request.
	ConversationID string
	// FileDraft is set for file_draft and file_update turns that produced
	// a document.
	FileDraft *FileDraft
	// Done reports whether the server sent a done event. A false value
	// with a nil error means the stream ended early; Message and Thinking
	// hold whatever streamed before the cut.
	Done bool
}

// ChatOptions configures one chat turn.
type ChatOptions struct {
	// Message is the user's prompt. Required.
	Message string
	// ConversationID continues an existing conversation. Empty starts a
	// new one.
	ConversationID string
	// Mode selects a special turn type ("file_draft", "file_update").
	// Empty means a normal question.
	Mode string
	// FileNameHint fixes the drafted file's name in file_draft mode.
	FileNameHint string
	// OnEvent, when non-nil, receives each decoded event as it arrives,
	// except error events, which surface as the returned *ServerError.
	// A non-nil return aborts the stream with that error.
	OnEvent func(StreamEvent) error
}

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
	Mode           string `json:"mode,omitempty"`
	FileNameHint   string `json:"file_name_hint,omitempty"`
}

// Chat sends one message to a bucket's assistant and decodes the event
// stream until the turn completes. Cancelling ctx aborts the stream and
// returns ctx.Err().
func (c *Client) Chat(ctx context.Context, bucketID string, opts ChatOptions) (*ChatResult, error) {
	payload, err := json.Marshal(chatRequest{
		Message:        opts.Message,
		ConversationID: opts.ConversationID,
		Mode:           opts.Mode,
		FileNameHint:   opts.FileNameHint,
	})
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/buckets/"+bucketID+"/chat", strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	c.logger.Debug("chat request", "bucket", bucketID, "conversation", opts.ConversationID, "mode", opts.Mode)

	resp, err := c.httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	return c.decodeStream(ctx, resp.Body, opts)
}

// decodeStream runs the event loop for one chat turn: accumulate incremental
// chunks, dispatch to the callback, and reconcile the done event into the
// final result.
func (c *Client) decodeStream(ctx context.Context, body io.Reader, opts ChatOptions) (*ChatResult, error) {
	var (
		reader   = sse.NewReader(body)
		message  strings.Builder
		thinking strings.Builder
		result   = &ChatResult{
			ConversationID: opts.ConversationID,
			Sources:        []Source{},
		}
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ev, err := reader.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, &TransportError{Err: err}
		}
		if ev == nil {
			// Stream ended without a done event. Return what streamed.
			result.Message = strings.TrimSpace(message.String())
			result.Thinking = thinking.String()
			return result, nil
		}

		var se StreamEvent
		if err := json.Unmarshal([]byte(ev.Data), &se); err != nil {
			c.logger.Debug("skipping malformed stream event", "err", err)
			continue
		}

		// Older deployments emit "content" for answer chunks.
		if se.Type == EventContent {
			se.Type = EventResponse
		}

		if opts.OnEvent != nil && se.Type != EventError {
			if err := opts.OnEvent(se); err != nil {
				return nil, err
			}
		}

		switch se.Type {
		case EventResponse:
			message.WriteString(se.Content)

		case EventThinking:
			thinking.WriteString(se.Content)

		case EventDone:
			result.Done = true
			if se.Message != "" {
				result.Message = strings.TrimSpace(se.Message)
			} else {
				result.Message = strings.TrimSpace(message.String())
			}
			result.Thinking = thinking.String()
			if result.Thinking == "" {
				result.Thinking = se.Thinking
			}
			if len(se.Sources) > 0 {
				result.Sources = se.Sources
			}
			if se.ConversationID != "" {
				result.ConversationID = se.ConversationID
			}
			result.FileDraft = se.FileDraft
			return result, nil

		case EventError:
			return nil, &ServerError{Message: se.Err}

		case EventPhaseChange, EventSearching:
			// Progress only; nothing to accumulate.

		default:
			c.logger.Debug("ignoring unknown stream event", "type", se.Type)
		}
	}
}
