package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-planetarium-booking/internal/application"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/session"
)

type SessionHandler struct {
	service SessionServiceInterface
}

func NewSessionHandler(s SessionServiceInterface) *SessionHandler {
	return &SessionHandler{service: s}
}

type CreateSessionRequest struct {
	ShowID   int64     `json:"astronomy_show" validate:"required,min=1" example:"1"`
	DomeID   int64     `json:"planetarium_dome" validate:"required,min=1" example:"1"`
	ShowTime time.Time `json:"show_time" validate:"required"`
}

type SessionResponse struct {
	ID       int64     `json:"id" example:"1"`
	ShowID   int64     `json:"astronomy_show" example:"1"`
	DomeID   int64     `json:"planetarium_dome" example:"1"`
	ShowTime time.Time `json:"show_time"`
}

type SessionListResponse struct {
	ID               int64     `json:"id" example:"1"`
	ShowTime         time.Time `json:"show_time"`
	ShowTitle        string    `json:"astronomy_show_title" example:"Journey to the Edge"`
	ShowImage        string    `json:"astronomy_show_image,omitempty"`
	DomeName         string    `json:"planetarium_dome_name" example:"Main Dome"`
	DomeCapacity     int       `json:"planetarium_dome_capacity" example:"120"`
	TicketsAvailable int       `json:"tickets_available" example:"90"`
}

type PlaceResponse struct {
	Row  int `json:"row" example:"3"`
	Seat int `json:"seat" example:"7"`
}

type SessionDetailResponse struct {
	ID          int64           `json:"id" example:"1"`
	ShowTime    time.Time       `json:"show_time"`
	ShowID      int64           `json:"astronomy_show" example:"1"`
	ShowTitle   string          `json:"astronomy_show_title"`
	DomeID      int64           `json:"planetarium_dome" example:"1"`
	DomeName    string          `json:"planetarium_dome_name"`
	DomeRows    int             `json:"planetarium_dome_rows" example:"10"`
	DomeSeats   int             `json:"planetarium_dome_seats_in_row" example:"12"`
	TakenPlaces []PlaceResponse `json:"taken_places"`
}

type AvailabilityResponse struct {
	SessionID int64 `json:"show_session" example:"1"`
	Available int   `json:"tickets_available" example:"90"`
}

func toSessionResponse(s *session.Session) SessionResponse {
	return SessionResponse{ID: s.ID, ShowID: s.ShowID, DomeID: s.DomeID, ShowTime: s.ShowTime}
}

// Create は新しい上映セッションを作成する
func (h *SessionHandler) Create(c echo.Context) error {
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	s, err := h.service.CreateSession(c.Request().Context(), application.CreateSessionInput{
		ShowID:   req.ShowID,
		DomeID:   req.DomeID,
		ShowTime: req.ShowTime,
	})
	if err != nil {
		// 参照先の番組・ドームが存在しない場合も入力不正として扱う
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, toSessionResponse(s))
}

// List はフィルタ条件に合うセッション一覧を返す
// date は YYYY-MM-DD、astronomy_show は番組ID
func (h *SessionHandler) List(c echo.Context) error {
	var filter session.Filter

	if raw := c.QueryParam("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, session.ErrInvalidDate.Error())
		}
		filter.Date = &date
	}
	if raw := c.QueryParam("astronomy_show"); raw != "" {
		showID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, session.ErrInvalidShowID.Error())
		}
		filter.ShowID = showID
	}

	items, err := h.service.ListSessions(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]SessionListResponse, len(items))
	for i, item := range items {
		resp[i] = SessionListResponse{
			ID:               item.ID,
			ShowTime:         item.ShowTime,
			ShowTitle:        item.ShowTitle,
			ShowImage:        item.ShowImage,
			DomeName:         item.DomeName,
			DomeCapacity:     item.DomeCapacity,
			TicketsAvailable: item.TicketsAvailable,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// GetByID は指定IDのセッション詳細（予約済み座席込み）を返す
func (h *SessionHandler) GetByID(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	detail, err := h.service.GetSessionDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	places := make([]PlaceResponse, len(detail.TakenPlaces))
	for i, p := range detail.TakenPlaces {
		places[i] = PlaceResponse{Row: p.Row, Seat: p.Seat}
	}
	return c.JSON(http.StatusOK, SessionDetailResponse{
		ID:          detail.ID,
		ShowTime:    detail.ShowTime,
		ShowID:      detail.ShowID,
		ShowTitle:   detail.ShowTitle,
		DomeID:      detail.DomeID,
		DomeName:    detail.DomeName,
		DomeRows:    detail.DomeRows,
		DomeSeats:   detail.DomeSeats,
		TakenPlaces: places,
	})
}

// Update はセッションを更新する
func (h *SessionHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	s, err := h.service.UpdateSession(c.Request().Context(), application.UpdateSessionInput{
		ID:       id,
		ShowID:   req.ShowID,
		DomeID:   req.DomeID,
		ShowTime: req.ShowTime,
	})
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, toSessionResponse(s))
}

// Delete はセッションを削除する
func (h *SessionHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteSession(c.Request().Context(), id); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// Availability はセッションの空席数を返す
func (h *SessionHandler) Availability(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	count, err := h.service.CountAvailableSeats(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, AvailabilityResponse{SessionID: id, Available: count})
}
