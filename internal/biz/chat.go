package biz

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// ChatMessage is one turn of the scenario conversation. AnalysisData is the
// raw analysis payload attached to assistant turns, stored verbatim so the
// frontend can re-render past charts.
type ChatMessage struct {
	ID           int             `json:"id"`
	Message      string          `json:"message"`
	Sender       string          `json:"sender"`
	Scenario     string          `json:"scenario,omitempty"`
	AnalysisData json.RawMessage `json:"analysis_data,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

// ChatRepo is the conversation storage interface. Append returns the
// authoritative id the client swaps in for its optimistic temporary id.
type ChatRepo interface {
	Append(ctx context.Context, userID int, m *ChatMessage) (int, error)
	List(ctx context.Context, userID int) ([]*ChatMessage, error)
	Delete(ctx context.Context, id, userID int) error
	Clear(ctx context.Context, userID int) error
}

// ChatUseCase manages ordered chat history per user.
type ChatUseCase struct {
	repo ChatRepo
	log  *log.Helper
}

// NewChatUseCase wires the chat history logic.
func NewChatUseCase(repo ChatRepo, logger log.Logger) *ChatUseCase {
	return &ChatUseCase{repo: repo, log: log.NewHelper(logger)}
}

// Append validates and persists one turn, returning its server-assigned id.
func (uc *ChatUseCase) Append(ctx context.Context, userID int, m *ChatMessage) (int, error) {
	m.Message = strings.TrimSpace(m.Message)
	m.Sender = strings.TrimSpace(m.Sender)
	if m.Message == "" {
		return 0, errors.BadRequest("VALIDATION", "message cannot be empty")
	}
	if m.Sender != "user" && m.Sender != "bot" {
		return 0, errors.BadRequest("VALIDATION", "sender must be user or bot")
	}
	return uc.repo.Append(ctx, userID, m)
}

// List returns the user's turns in insertion order.
func (uc *ChatUseCase) List(ctx context.Context, userID int) ([]*ChatMessage, error) {
	return uc.repo.List(ctx, userID)
}

// Delete removes one turn owned by the user.
func (uc *ChatUseCase) Delete(ctx context.Context, id, userID int) error {
	return uc.repo.Delete(ctx, id, userID)
}

// Clear removes the user's whole history.
func (uc *ChatUseCase) Clear(ctx context.Context, userID int) error {
	return uc.repo.Clear(ctx, userID)
}
