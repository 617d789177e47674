package service

import (
	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/model"
)

type analyzeRequest struct {
	Headline string `json:"headline"`
}

// Analyze scores a scenario headline for every country and aspect.
func (s *ResilienceService) Analyze(ctx khttp.Context) error {
	uid, err := s.authorize(ctx)
	if err != nil {
		return err
	}

	var req analyzeRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("VALIDATION", "invalid request body")
	}

	result, err := s.ucAnalysis.Analyze(ctx, uid, req.Headline)
	if err != nil {
		return err
	}
	return ctx.Result(200, result)
}

// Results returns the caller's most recent analysis.
func (s *ResilienceService) Results(ctx khttp.Context) error {
	uid, err := s.authorize(ctx)
	if err != nil {
		return err
	}
	result, ok := s.ucAnalysis.LastResult(uid)
	if !ok {
		return errors.NotFound("NO_RESULTS", "no analysis has been run yet")
	}
	return ctx.Result(200, result)
}

// Countries lists the tracked countries in ranking order.
func (s *ResilienceService) Countries(ctx khttp.Context) error {
	return ctx.Result(200, map[string][]string{"countries": model.Countries})
}

// Aspects lists the scored resilience aspects.
func (s *ResilienceService) Aspects(ctx khttp.Context) error {
	return ctx.Result(200, map[string][]string{"aspects": model.Aspects})
}

// BaselineAudit exposes the raw and normalized indicator data behind the
// baseline table.
func (s *ResilienceService) BaselineAudit(ctx khttp.Context) error {
	return ctx.Result(200, s.baseline.Audit())
}
