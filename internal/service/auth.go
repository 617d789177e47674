package service

import (
	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and logs it in.
func (s *ResilienceService) Register(ctx khttp.Context) error {
	var req registerRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("VALIDATION", "invalid request body")
	}

	u, err := s.ucUser.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}
	token, _, err := s.ucUser.Login(ctx, u.Email, req.Password)
	if err != nil {
		return err
	}
	return ctx.Result(200, map[string]interface{}{
		"token": token,
		"user":  buildUserPayload(u),
	})
}

// Login verifies credentials and issues a token.
func (s *ResilienceService) Login(ctx khttp.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("VALIDATION", "invalid request body")
	}

	token, u, err := s.ucUser.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	return ctx.Result(200, map[string]interface{}{
		"token": token,
		"user":  buildUserPayload(u),
	})
}

// Me reports whether the bearer token is valid and who it belongs to.
// An invalid or missing token is not an error here: the frontend polls
// this on load to decide whether to show the login screen.
func (s *ResilienceService) Me(ctx khttp.Context) error {
	uid, err := s.authorize(ctx)
	if err != nil {
		return ctx.Result(200, map[string]interface{}{"authenticated": false})
	}
	u, err := s.ucUser.Profile(ctx, uid)
	if err != nil {
		return ctx.Result(200, map[string]interface{}{"authenticated": false})
	}
	return ctx.Result(200, map[string]interface{}{
		"authenticated": true,
		"user":          buildUserPayload(u),
	})
}

// DeleteAccount removes the account along with its history and cached
// analyses.
func (s *ResilienceService) DeleteAccount(ctx khttp.Context) error {
	uid, err := s.authorize(ctx)
	if err != nil {
		return err
	}
	if err := s.ucChat.Clear(ctx, uid); err != nil {
		return err
	}
	s.ucAnalysis.Forget(uid)
	if err := s.ucUser.DeleteAccount(ctx, uid); err != nil {
		return err
	}
	return ctx.Result(200, map[string]string{"status": "deleted"})
}
