package http

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"toptop/internal/config"
	"toptop/internal/database"
	"toptop/internal/handler"
	"toptop/internal/logger"
	"toptop/internal/redis"
	"toptop/internal/repository"
	"toptop/internal/service"
	"toptop/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	// 3. Optional Redis for identity sync dedupe
	var gate service.SyncGate
	if cfg.RedisURL != "" {
		rdb, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		if err := rdb.Ping(ctx); err != nil {
			logrus.Warnf("[Server] Redis unreachable, account sync will not be deduplicated: %v", err)
		}
		gate = redis.NewSyncMarker(rdb.Client, redis.DefaultSyncTTL)
	}

	// 4. Repositories and services
	accountRepo := repository.NewAccountRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	engagement := service.NewEngagementService(accountRepo, likeRepo, followRepo, commentRepo)
	accountService := service.NewAccountService(accountRepo, followRepo, videoRepo, gate)
	videoService := service.NewVideoService(videoRepo, likeRepo, engagement)

	routerCfg := RouterConfig{
		VideoHandler:   handler.NewVideoHandler(service.NewFeedService(videoRepo, engagement), videoService),
		LikeHandler:    handler.NewLikeHandler(service.NewLikeService(likeRepo, videoRepo)),
		FollowHandler:  handler.NewFollowHandler(service.NewFollowService(followRepo, accountRepo)),
		CommentHandler: handler.NewCommentHandler(service.NewCommentService(commentRepo, videoRepo, engagement)),
		AccountHandler: handler.NewAccountHandler(accountService, service.NewSearchService(accountRepo, videoRepo)),
		JWTSecret:      cfg.JWTSecret,
		AccountSyncer:  accountService,
	}

	// 5. Media uploads are optional in local setups
	store, err := storage.New(ctx, cfg)
	if err != nil {
		logrus.Warnf("[Server] Media uploads disabled: %v", err)
	} else {
		if m, ok := store.(*storage.MinIOStore); ok {
			if err := m.EnsureBucket(ctx); err != nil {
				logrus.Warnf("[Server] Could not ensure media bucket: %v", err)
			}
		}
		routerCfg.MediaHandler = handler.NewMediaHandler(service.NewMediaService(store, cfg.MediaPublicURL))
	}

	// 6. Serve until signalled
	srv := &stdhttp.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           NewRouter(routerCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("[Server] Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("[Server] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
