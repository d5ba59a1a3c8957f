//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/ai-almanac/internal/bootstrap"
	"github.com/yanqian/ai-almanac/internal/domain/almanac"
	"github.com/yanqian/ai-almanac/internal/infra/config"
	httpiface "github.com/yanqian/ai-almanac/internal/interface/http"
	"github.com/yanqian/ai-almanac/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAlmanacConfig,
		provideTokenCounter,
		provideGenerator,
		almanac.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
