package main

import (
	"log/slog"
	"mymdb/proj/internal/cache"
	"mymdb/proj/internal/config"
	"mymdb/proj/internal/lib/decoder"
	"mymdb/proj/internal/lib/validator"
	"mymdb/proj/internal/services"

	govalidator "github.com/go-playground/validator/v10"
)

type TaskExecutor interface {
	TryAdd(task func()) bool
}

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	Services  *services.Services
	pages     *cache.PageCache
	tasks     TaskExecutor
	validator *govalidator.Validate
	decoder   *decoder.QueryDecoder
}

func NewApplication(
	cfg *config.Config,
	log *slog.Logger,
	svcs *services.Services,
	pages *cache.PageCache,
	tasks TaskExecutor,
) *Application {
	return &Application{
		cfg:       cfg,
		log:       log,
		Services:  svcs,
		pages:     pages,
		tasks:     tasks,
		validator: validator.New(),
		decoder:   decoder.New(),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
