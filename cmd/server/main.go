package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "pollcast/docs"
	"pollcast/internal/config"
	"pollcast/internal/domain/poll"
	"pollcast/internal/domain/user"
	"pollcast/internal/domain/vote"
	api "pollcast/internal/http"
	"pollcast/internal/metrics"
	"pollcast/internal/platform/database"
	jwtpkg "pollcast/internal/platform/jwt"
	"pollcast/internal/repository/postgres"
	"pollcast/internal/worker"
)

// @title           Pollcast API
// @version         1.0
// @description     Poll and voting backend with JWT access/refresh auth
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)
	metrics.Register()

	db, err := database.NewPostgres(cfg.DB_DSN)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	userRepo := postgres.NewUserRepo(db)
	rtRepo := postgres.NewRefreshTokenRepo(db)
	pollRepo := postgres.NewPollRepo(db)
	voteRepo := postgres.NewVoteRepo(db)

	jwtMgr := jwtpkg.NewManager(jwtpkg.Config{
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	})

	userSvc := user.NewService(userRepo, rtRepo, jwtMgr)
	pollSvc := poll.NewService(pollRepo)
	voteSvc := vote.NewService(voteRepo)

	voteCh := make(chan worker.VoteEvent, 100)
	voteWorker := worker.NewVoteWorker(voteCh, logger)

	router := api.NewRouter(userSvc, pollSvc, voteSvc, jwtMgr, voteCh, db)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go voteWorker.Run(ctx)

	go func() {
		log.Printf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}

	log.Println("server stopped")
}
