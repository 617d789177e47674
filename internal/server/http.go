package server

import (
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"

	"github.com/VickyRohilla862/ResiliTrack-AI/internal/conf"
	"github.com/VickyRohilla862/ResiliTrack-AI/internal/service"
)

// NewHTTPServer builds the API server and registers the /api routes.
func NewHTTPServer(c *conf.Server, s *service.ResilienceService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
		http.Filter(requestID),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)

	r := srv.Route("/api")
	r.POST("/analyze", s.Analyze)
	r.GET("/results", s.Results)
	r.GET("/countries", s.Countries)
	r.GET("/aspects", s.Aspects)
	r.GET("/baseline-audit", s.BaselineAudit)

	r.GET("/chat-history", s.ChatHistory)
	r.POST("/chat-history", s.AppendChat)
	r.DELETE("/chat-history", s.ClearChat)
	r.DELETE("/chat-history/{id}", s.DeleteChatMessage)

	r.POST("/auth/register", s.Register)
	r.POST("/auth/login", s.Login)
	r.GET("/auth/me", s.Me)
	r.DELETE("/auth/account", s.DeleteAccount)

	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.Write([]byte("ok"))
	})

	return srv
}

// requestID tags every request so log lines can be correlated with responses.
func requestID(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
