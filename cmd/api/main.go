package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"mymdb/proj/internal/api/tasks"
	"mymdb/proj/internal/blobstore"
	"mymdb/proj/internal/cache"
	"mymdb/proj/internal/clients/sso/grpc"
	"mymdb/proj/internal/config"
	"mymdb/proj/internal/lib/logger"
	"mymdb/proj/internal/services"
	"mymdb/proj/internal/storage/postgres"
	pgmodels "mymdb/proj/internal/storage/postgres/models"
	"mymdb/proj/internal/storage/sqlite"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)

	storage, closeStorage, err := openStorage(cfg, log)
	if err != nil {
		log.Error("failed to open storage", "driver", cfg.DB.Driver, "errMsg", err.Error())
		os.Exit(1)
	}
	defer closeStorage()
	log.Info("database connection established", "driver", cfg.DB.Driver)

	store := openCache(cfg, log)

	blobs, err := blobstore.New(log, blobstore.Config{
		Endpoint:  cfg.Images.Endpoint,
		AccessKey: cfg.Images.AccessKey,
		SecretKey: cfg.Images.SecretKey,
		Bucket:    cfg.Images.Bucket,
		UseSSL:    cfg.Images.UseSSL,
		PublicURL: cfg.Images.PublicURL,
	})
	if err != nil {
		log.Error("failed to create blob store client", "errMsg", err.Error())
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := blobs.EnsureBucket(ctx); err != nil {
		log.Warn("image bucket is not available, uploads will fail", "errMsg", err.Error())
	}
	cancel()

	sso, err := grpc.New(
		log,
		cfg.Clients.SSO.Addr,
		cfg.Clients.SSO.RetryTimeout,
		cfg.Clients.SSO.RetriesCount,
	)
	if err != nil {
		log.Error("failed to create sso client", "errMsg", err.Error())
		os.Exit(1)
	}

	bgTasks := tasks.New(log, cfg.Tasks.Workers, cfg.Tasks.QueueSize)
	bgTasks.Run()

	pages := cache.NewPageCache(log, store, cfg.Cache.KeyPrefix, cfg.Listing.CacheTimeout)
	app := NewApplication(cfg, log, services.New(log, cfg, storage, sso, blobs), pages, bgTasks)
	serveErr := app.serve()

	ctx, cancel = context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	bgTasks.Shutdown(ctx)
	if serveErr != nil {
		log.Error("shutting down the server", "reason", serveErr.Error())
		os.Exit(1)
	}
}

func openStorage(cfg *config.Config, log *slog.Logger) (services.Storage, func(), error) {
	switch cfg.DB.Driver {
	case config.DriverSqlite:
		db, err := sqlite.New(cfg.DB.Dsn, log)
		if err != nil {
			return services.Storage{}, nil, err
		}
		m := sqlite.NewModels(db)
		storage := services.Storage{Movies: m.Movie, Persons: m.Person, Votes: m.Vote, Images: m.Image}
		return storage, func() { db.Close() }, nil
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		db, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
		if err != nil {
			return services.Storage{}, nil, err
		}
		m := pgmodels.New(db)
		storage := services.Storage{Movies: m.Movie, Persons: m.Person, Votes: m.Vote, Images: m.Image}
		return storage, db.Conn.Close, nil
	}
}

// openCache never fails: the page cache only saves work, so an unreachable
// Redis is reported and requests are served uncached until it comes back.
func openCache(cfg *config.Config, log *slog.Logger) cache.Store {
	if cfg.Cache.Backend != config.CacheRedis {
		return cache.NewMemoryStore(cfg.Cache.DefaultTimeout, 2*cfg.Cache.DefaultTimeout)
	}
	store := cache.NewRedisStore(cache.RedisOptions{
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	}, cfg.Cache.DefaultTimeout)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		log.Warn("cache is not available, pages will be served uncached", "addr", cfg.Cache.Addr, "errMsg", err.Error())
	}
	return store
}
