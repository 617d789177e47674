package service

import (
	"encoding/json"
	"strconv"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/VickyRohilla862/ResiliTrack-AI/internal/biz"
)

type chatAppendRequest struct {
	Message      string          `json:"message"`
	Sender       string          `json:"sender"`
	Scenario     string          `json:"scenario"`
	AnalysisData json.RawMessage `json:"analysis_data"`
}

// ChatHistory returns the caller's conversation in insertion order.
func (s *ResilienceService) ChatHistory(ctx khttp.Context) error {
	uid, err := s.authorize(ctx)
	if err != nil {
		return err
	}
	messages, err := s.ucChat.List(ctx, uid)
	if err != nil {
		return err
	}
	if messages == nil {
		messages = []*biz.ChatMessage{}
	}
	return ctx.Result(200, map[string]interface{}{"messages": messages})
}

// AppendChat persists one turn and returns its server-assigned id.
func (s *ResilienceService) AppendChat(ctx khttp.Context) error {
	uid, err := s.authorize(ctx)
	if err != nil {
		return err
	}

	var req chatAppendRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("VALIDATION", "invalid request body")
	}

	id, err := s.ucChat.Append(ctx, uid, &biz.ChatMessage{
		Message:      req.Message,
		Sender:       req.Sender,
		Scenario:     req.Scenario,
		AnalysisData: req.AnalysisData,
	})
	if err != nil {
		return err
	}
	return ctx.Result(200, map[string]interface{}{"id": id})
}

// ClearChat removes the caller's whole history.
func (s *ResilienceService) ClearChat(ctx khttp.Context) error {
	uid, err := s.authorize(ctx)
	if err != nil {
		return err
	}
	if err := s.ucChat.Clear(ctx, uid); err != nil {
		return err
	}
	return ctx.Result(200, map[string]string{"status": "cleared"})
}

// DeleteChatMessage removes one turn owned by the caller.
func (s *ResilienceService) DeleteChatMessage(ctx khttp.Context) error {
	uid, err := s.authorize(ctx)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(ctx.Vars().Get("id"))
	if err != nil || id <= 0 {
		return errors.BadRequest("VALIDATION", "invalid message id")
	}

	if err := s.ucChat.Delete(ctx, id, uid); err != nil {
		return err
	}
	return ctx.Result(200, map[string]string{"status": "deleted"})
}
