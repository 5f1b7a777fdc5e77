package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanosuguru/go-planetarium-booking/internal/api/handler"
	"github.com/sanosuguru/go-planetarium-booking/internal/api/middleware"
)

// Handlers はルーティングに必要なハンドラーをまとめる
type Handlers struct {
	Health      *handler.HealthHandler
	Theme       *handler.ThemeHandler
	Dome        *handler.DomeHandler
	Show        *handler.ShowHandler
	Session     *handler.SessionHandler
	Reservation *handler.ReservationHandler
}

// Register は全ルートを登録する
// カタログの参照は認証済みユーザーに、書き込みはスタッフに限定される
func Register(e *echo.Echo, h *Handlers, jwtSecret string) {
	// ヘルスチェックとメトリクスは認証の外に置く
	e.GET("/api/v1/health", h.Health.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth())

	v1 := e.Group("/api/v1", middleware.JWTAuth(jwtSecret))
	staff := middleware.StaffOnly()

	themes := v1.Group("/show_themes")
	themes.GET("", h.Theme.List)
	themes.GET("/:id", h.Theme.GetByID)
	themes.POST("", h.Theme.Create, staff)

	domes := v1.Group("/planetarium_domes")
	domes.GET("", h.Dome.List)
	domes.GET("/:id", h.Dome.GetByID)
	domes.POST("", h.Dome.Create, staff)

	shows := v1.Group("/astronomy_shows")
	shows.GET("", h.Show.List)
	shows.GET("/:id", h.Show.GetByID)
	shows.POST("", h.Show.Create, staff)
	shows.POST("/:id/upload-image", h.Show.UploadImage, staff)

	sessions := v1.Group("/show_sessions")
	sessions.GET("", h.Session.List)
	sessions.GET("/:id", h.Session.GetByID)
	sessions.GET("/:id/availability", h.Session.Availability)
	sessions.POST("", h.Session.Create, staff)
	sessions.PUT("/:id", h.Session.Update, staff)
	sessions.DELETE("/:id", h.Session.Delete, staff)

	reservations := v1.Group("/reservations")
	reservations.GET("", h.Reservation.List)
	reservations.POST("", h.Reservation.Create)
}
