package service

import (
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/VickyRohilla862/ResiliTrack-AI/internal/biz"
	"github.com/VickyRohilla862/ResiliTrack-AI/pkg/baseline"
)

// ResilienceService exposes the analysis, chat, and auth routes.
type ResilienceService struct {
	ucAnalysis *biz.AnalysisUseCase
	ucChat     *biz.ChatUseCase
	ucUser     *biz.UserUseCase
	baseline   *baseline.Provider
	log        *log.Helper
}

// NewResilienceService wires the HTTP service.
func NewResilienceService(
	ucAnalysis *biz.AnalysisUseCase,
	ucChat *biz.ChatUseCase,
	ucUser *biz.UserUseCase,
	bp *baseline.Provider,
	logger log.Logger,
) *ResilienceService {
	return &ResilienceService{
		ucAnalysis: ucAnalysis,
		ucChat:     ucChat,
		ucUser:     ucUser,
		baseline:   bp,
		log:        log.NewHelper(logger),
	}
}

// authorize extracts and validates the bearer token, returning the user id.
func (s *ResilienceService) authorize(ctx khttp.Context) (int, error) {
	authz := ctx.Header().Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return 0, errors.Unauthorized("AUTH_REQUIRED", "missing bearer token")
	}
	return s.ucUser.ParseToken(strings.TrimPrefix(authz, "Bearer "))
}

type userPayload struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func buildUserPayload(u *biz.User) *userPayload {
	if u == nil {
		return nil
	}
	return &userPayload{ID: u.ID, Email: u.Email, Name: u.Name}
}
