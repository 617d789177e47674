package server

import (
	"github.com/google/wire"

	"github.com/VickyRohilla862/ResiliTrack-AI/internal/biz"
	"github.com/VickyRohilla862/ResiliTrack-AI/internal/data"
	"github.com/VickyRohilla862/ResiliTrack-AI/internal/service"
)

// ProviderSet wires the full HTTP application.
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewBaselineProvider,
	NewInterpreter,

	// Data providers
	data.NewData,
	data.NewUserRepo,
	data.NewChatRepo,

	// UseCase providers
	biz.NewUserUseCase,
	biz.NewChatUseCase,
	biz.NewAnalysisUseCase,

	// Service providers
	service.NewResilienceService,
)
