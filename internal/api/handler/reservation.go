package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-planetarium-booking/internal/api/middleware"
	"github.com/sanosuguru/go-planetarium-booking/internal/application"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/dome"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/reservation"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/session"
)

type ReservationHandler struct {
	service ReservationServiceInterface
}

func NewReservationHandler(s ReservationServiceInterface) *ReservationHandler {
	return &ReservationHandler{service: s}
}

type TicketRequest struct {
	Row       int   `json:"row" validate:"required,min=1" example:"3"`
	Seat      int   `json:"seat" validate:"required,min=1" example:"7"`
	SessionID int64 `json:"show_session" validate:"required,min=1" example:"1"`
}

type CreateReservationRequest struct {
	Tickets []TicketRequest `json:"tickets" validate:"required,min=1,dive"`
}

type TicketResponse struct {
	ID        int64 `json:"id" example:"1"`
	Row       int   `json:"row" example:"3"`
	Seat      int   `json:"seat" example:"7"`
	SessionID int64 `json:"show_session" example:"1"`
}

type ReservationResponse struct {
	ID        int64            `json:"id" example:"1"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []TicketResponse `json:"tickets"`
}

// TicketListItemResponse は予約一覧でのチケットレスポンス
// 座席に加えて上映セッションの一覧射影を展開する
type TicketListItemResponse struct {
	ID      int64               `json:"id" example:"1"`
	Row     int                 `json:"row" example:"3"`
	Seat    int                 `json:"seat" example:"7"`
	Session SessionListResponse `json:"show_session"`
}

type ReservationListItemResponse struct {
	ID        int64                    `json:"id" example:"1"`
	CreatedAt time.Time                `json:"created_at"`
	Tickets   []TicketListItemResponse `json:"tickets"`
}

// PaginatedReservations はページ単位の予約一覧レスポンス
type PaginatedReservations struct {
	Count   int                           `json:"count" example:"25"`
	Results []ReservationListItemResponse `json:"results"`
}

func toReservationResponse(r *reservation.Reservation) ReservationResponse {
	tickets := make([]TicketResponse, len(r.Tickets))
	for i, t := range r.Tickets {
		tickets[i] = TicketResponse{ID: t.ID, Row: t.Row, Seat: t.Seat, SessionID: t.SessionID}
	}
	return ReservationResponse{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Tickets:   tickets,
	}
}

func toReservationListItemResponse(item *reservation.ListItem) ReservationListItemResponse {
	tickets := make([]TicketListItemResponse, len(item.Tickets))
	for i, t := range item.Tickets {
		tickets[i] = TicketListItemResponse{
			ID:   t.ID,
			Row:  t.Row,
			Seat: t.Seat,
			Session: SessionListResponse{
				ID:               t.Session.ID,
				ShowTime:         t.Session.ShowTime,
				ShowTitle:        t.Session.ShowTitle,
				ShowImage:        t.Session.ShowImage,
				DomeName:         t.Session.DomeName,
				DomeCapacity:     t.Session.DomeCapacity,
				TicketsAvailable: t.Session.TicketsAvailable,
			},
		}
	}
	return ReservationListItemResponse{
		ID:        item.ID,
		CreatedAt: item.CreatedAt,
		Tickets:   tickets,
	}
}

// Create はログインユーザーの予約を作成する
// 全チケットが確保できた場合のみ成功し、1枚でも失敗すれば全体が失敗する
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}

	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tickets := make([]application.TicketInput, len(req.Tickets))
	for i, t := range req.Tickets {
		tickets[i] = application.TicketInput{Row: t.Row, Seat: t.Seat, SessionID: t.SessionID}
	}

	r, err := h.service.CreateReservation(c.Request().Context(), application.CreateReservationInput{
		UserID:  userID,
		Tickets: tickets,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrSeatTaken),
			errors.Is(err, reservation.ErrTicketsEmpty),
			errors.Is(err, reservation.ErrDuplicateSeat),
			errors.Is(err, dome.ErrRowOutOfRange),
			errors.Is(err, dome.ErrSeatOutOfRange),
			errors.Is(err, session.ErrSessionNotFound):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, toReservationResponse(r))
}

// List はログインユーザー自身の予約一覧をページ単位で返す
// 他のユーザーの予約は一切含まれない
func (h *ReservationHandler) List(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	items, total, err := h.service.GetUserReservations(c.Request().Context(), userID, page, pageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]ReservationListItemResponse, len(items))
	for i, item := range items {
		results[i] = toReservationListItemResponse(item)
	}
	return c.JSON(http.StatusOK, PaginatedReservations{Count: total, Results: results})
}
