package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-planetarium-booking/internal/api"
	"github.com/sanosuguru/go-planetarium-booking/internal/api/handler"
	apimiddleware "github.com/sanosuguru/go-planetarium-booking/internal/api/middleware"
	"github.com/sanosuguru/go-planetarium-booking/internal/api/router"
	"github.com/sanosuguru/go-planetarium-booking/internal/application"
	"github.com/sanosuguru/go-planetarium-booking/internal/config"
	"github.com/sanosuguru/go-planetarium-booking/internal/infrastructure/media"
	"github.com/sanosuguru/go-planetarium-booking/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/go-planetarium-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-planetarium-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-planetarium-booking/internal/pkg/metrics"
)

func main() {
	// 設定読み込み
	cfg := config.Load()

	// ロガー初期化
	logger.Set(logger.NewLogger(os.Getenv("APP_ENV")))
	defer logger.Sync()

	// メトリクス初期化
	m := metrics.Init()

	// データベース接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続に失敗しました", zap.Error(err))
	}
	defer db.Close()

	// マイグレーション実行
	if err := postgres.RunMigrations(db.DB, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("マイグレーションに失敗しました", zap.Error(err))
	}

	// Redis接続（失敗してもキャッシュなしで起動する）
	var availabilityCache *redisinfra.AvailabilityCache
	redisClient := redisinfra.NewClient(&cfg.Redis)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisinfra.Ping(ctx, redisClient); err != nil {
			logger.Warn("Redis接続に失敗しました。キャッシュなしで起動します", zap.Error(err))
		} else {
			availabilityCache = redisinfra.NewAvailabilityCache(redisClient)
		}
		cancel()
	}
	defer redisClient.Close()

	// メディアストア
	mediaStore, err := media.NewStore(cfg.Media.Root)
	if err != nil {
		logger.Fatal("メディアストアの初期化に失敗しました", zap.Error(err))
	}

	// リポジトリ
	txManager := postgres.NewTxManager(db)
	themeRepo := postgres.NewThemeRepository(db)
	domeRepo := postgres.NewDomeRepository(db)
	showRepo := postgres.NewShowRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	reservationRepo := postgres.NewReservationRepository(db)

	// アプリケーションサービス
	catalogService := application.NewCatalogService(themeRepo, domeRepo)
	showService := application.NewShowService(showRepo, mediaStore)
	sessionService := application.NewSessionService(sessionRepo, showRepo, domeRepo, availabilityCache)
	reservationService := application.NewReservationService(txManager, reservationRepo, sessionRepo, domeRepo, availabilityCache)

	// Echo初期化
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler

	apimiddleware.SetupMiddleware(e)
	e.Use(apimiddleware.PrometheusMiddleware(m))

	// ルーティング
	handlers := &router.Handlers{
		Health:      handler.NewHealthHandler(),
		Theme:       handler.NewThemeHandler(catalogService),
		Dome:        handler.NewDomeHandler(catalogService),
		Show:        handler.NewShowHandler(showService),
		Session:     handler.NewSessionHandler(sessionService),
		Reservation: handler.NewReservationHandler(reservationService),
	}
	router.Register(e, handlers, cfg.Auth.JWTSecret)

	// サーバー起動
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("サーバーを起動します", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
