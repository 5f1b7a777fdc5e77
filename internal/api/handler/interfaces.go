package handler

import (
	"context"
	"io"

	"github.com/sanosuguru/go-planetarium-booking/internal/application"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/dome"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/reservation"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/session"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/show"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/theme"
)

// CatalogServiceInterface はカタログサービスのインターフェース
type CatalogServiceInterface interface {
	CreateTheme(ctx context.Context, name string) (*theme.Theme, error)
	GetTheme(ctx context.Context, id int64) (*theme.Theme, error)
	ListThemes(ctx context.Context) ([]*theme.Theme, error)
	CreateDome(ctx context.Context, input application.CreateDomeInput) (*dome.Dome, error)
	GetDome(ctx context.Context, id int64) (*dome.Dome, error)
	ListDomes(ctx context.Context) ([]*dome.Dome, error)
}

// ShowServiceInterface は番組サービスのインターフェース
type ShowServiceInterface interface {
	CreateShow(ctx context.Context, input application.CreateShowInput) (*show.Show, error)
	GetShow(ctx context.Context, id int64) (*show.Show, error)
	ListShows(ctx context.Context, filter show.Filter) ([]*show.Show, error)
	UploadImage(ctx context.Context, id int64, filename string, r io.Reader) (*show.Show, error)
}

// SessionServiceInterface はセッションサービスのインターフェース
type SessionServiceInterface interface {
	CreateSession(ctx context.Context, input application.CreateSessionInput) (*session.Session, error)
	GetSession(ctx context.Context, id int64) (*session.Session, error)
	GetSessionDetail(ctx context.Context, id int64) (*session.Detail, error)
	ListSessions(ctx context.Context, filter session.Filter) ([]*session.ListItem, error)
	UpdateSession(ctx context.Context, input application.UpdateSessionInput) (*session.Session, error)
	DeleteSession(ctx context.Context, id int64) error
	CountAvailableSeats(ctx context.Context, sessionID int64) (int, error)
}

// ReservationServiceInterface は予約サービスのインターフェース
type ReservationServiceInterface interface {
	CreateReservation(ctx context.Context, input application.CreateReservationInput) (*reservation.Reservation, error)
	GetUserReservations(ctx context.Context, userID int64, page, pageSize int) ([]*reservation.ListItem, int, error)
}
