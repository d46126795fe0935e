package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Team_Social/internal/config"
	"Team_Social/internal/handler"
	"Team_Social/internal/logger"
	"Team_Social/internal/middleware"
	"Team_Social/internal/pkg"
	"Team_Social/internal/repository/mysql"
	rdb "Team_Social/internal/repository/redis"
	"Team_Social/internal/router"
	"Team_Social/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := mysql.Open(mysql.Options{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		MaxLifetime:  time.Hour,
	})
	if err != nil {
		log.Fatal("connect mysql failed", zap.Error(err))
	}
	defer func() { _ = mysql.Close(db) }()

	// 自动建表
	if cfg.Database.AutoMigrate {
		if err := mysql.AutoMigrate(db); err != nil {
			log.Fatal("auto migrate failed", zap.Error(err))
		}
	}

	// 连接redis
	redisClient, err := rdb.Open(rdb.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal("connect redis failed", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	// 仓储
	teamRepo := mysql.NewTeamRepository(db)
	profileRepo := &mysql.ProfileRepository{DB: db}
	postRepo := &mysql.PostRepository{DB: db}
	followRepo := &mysql.FollowRepository{DB: db}
	userRepo := &mysql.UserRepository{DB: db}
	outboxRepo := &mysql.OutboxRepository{DB: db}
	sessionRepo := &rdb.SessionRepository{RDB: redisClient, TTL: pkg.RefreshTTL}
	pageCache := rdb.NewPageCache(redisClient)

	// 服务
	tokens := pkg.NewTokenIssuer(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret)
	authSvc := service.NewAuthService(userRepo, sessionRepo, profileRepo, tokens, log)
	if google := pkg.NewGoogleOAuth(pkg.OAuthConfig{
		ClientID:     cfg.OAuth.Google.ClientID,
		ClientSecret: cfg.OAuth.Google.ClientSecret,
		RedirectURL:  cfg.OAuth.Google.RedirectURL,
	}); google != nil {
		authSvc.WithOAuth(google)
	}
	teamSvc := service.NewTeamService(teamRepo, profileRepo, postRepo, followRepo, pageCache, log)
	postSvc := service.NewPostService(postRepo, profileRepo, pageCache, log)
	followSvc := service.NewFollowService(followRepo, profileRepo, pageCache, log)

	// outbox 投递：配置了 kafka 就发 kafka，否则只记日志
	sender := service.LogSender(log)
	if len(cfg.Kafka.Brokers) > 0 {
		producer := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		defer func() { _ = producer.Close() }()
		sender = service.KafkaSender(producer)
	}
	relayer := service.NewOutboxRelayer(outboxRepo, &rdb.DistLock{RDB: redisClient, TTL: 30 * time.Second}, sender, log)

	// 处理器
	cookies := middleware.CookieOptions{Secure: cfg.Auth.CookieSecure}
	render := handler.NewRenderer(teamSvc, log)
	r, err := router.InitRouter(router.Deps{
		Auth:    handler.NewAuthHandler(authSvc, render, cookies, sessions.NewCookieStore([]byte(cfg.Auth.SessionKey)), log),
		Teams:   handler.NewTeamHandler(teamSvc, render),
		Posts:   handler.NewPostHandler(postSvc, render),
		Follows: handler.NewFollowHandler(followSvc, teamSvc),
		Health: handler.NewHealthHandler(map[string]handler.Check{
			"mysql": func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			"redis": func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		}, log),
		Render: render,
		Gate:   middleware.Gate(authSvc, profileRepo, cookies, log),
		Log:    log,
	})
	if err != nil {
		log.Fatal("init router failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		relayer.Run(ctx)
	}()

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("http server started", zap.String("addr", cfg.HTTP.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
	<-relayDone
}
