package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-planetarium-booking/internal/application"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/dome"
)

type DomeHandler struct {
	service CatalogServiceInterface
}

func NewDomeHandler(s CatalogServiceInterface) *DomeHandler {
	return &DomeHandler{service: s}
}

type CreateDomeRequest struct {
	Name       string `json:"name" validate:"required" example:"Main Dome"`
	Rows       int    `json:"rows" validate:"required,min=1" example:"10"`
	SeatsInRow int    `json:"seats_in_row" validate:"required,min=1" example:"12"`
}

type DomeResponse struct {
	ID         int64  `json:"id" example:"1"`
	Name       string `json:"name" example:"Main Dome"`
	Rows       int    `json:"rows" example:"10"`
	SeatsInRow int    `json:"seats_in_row" example:"12"`
	Capacity   int    `json:"capacity" example:"120"`
}

func toDomeResponse(d *dome.Dome) DomeResponse {
	return DomeResponse{
		ID:         d.ID,
		Name:       d.Name,
		Rows:       d.Rows,
		SeatsInRow: d.SeatsInRow,
		Capacity:   d.Capacity(),
	}
}

// Create は新しいドームを作成する
func (h *DomeHandler) Create(c echo.Context) error {
	var req CreateDomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	d, err := h.service.CreateDome(c.Request().Context(), application.CreateDomeInput{
		Name:       req.Name,
		Rows:       req.Rows,
		SeatsInRow: req.SeatsInRow,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, toDomeResponse(d))
}

// List はドーム一覧を返す
func (h *DomeHandler) List(c echo.Context) error {
	domes, err := h.service.ListDomes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]DomeResponse, len(domes))
	for i, d := range domes {
		resp[i] = toDomeResponse(d)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetByID は指定IDのドームを返す
func (h *DomeHandler) GetByID(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	d, err := h.service.GetDome(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, dome.ErrDomeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toDomeResponse(d))
}
