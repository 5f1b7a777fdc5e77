package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-planetarium-booking/internal/domain/theme"
)

type ThemeHandler struct {
	service CatalogServiceInterface
}

func NewThemeHandler(s CatalogServiceInterface) *ThemeHandler {
	return &ThemeHandler{service: s}
}

type CreateThemeRequest struct {
	Name string `json:"name" validate:"required" example:"Deep Space"`
}

type ThemeResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Deep Space"`
}

func toThemeResponse(t *theme.Theme) ThemeResponse {
	return ThemeResponse{ID: t.ID, Name: t.Name}
}

// Create は新しい上映テーマを作成する
func (h *ThemeHandler) Create(c echo.Context) error {
	var req CreateThemeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	t, err := h.service.CreateTheme(c.Request().Context(), req.Name)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, toThemeResponse(t))
}

// List は上映テーマ一覧を返す
func (h *ThemeHandler) List(c echo.Context) error {
	themes, err := h.service.ListThemes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]ThemeResponse, len(themes))
	for i, t := range themes {
		resp[i] = toThemeResponse(t)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetByID は指定IDの上映テーマを返す
func (h *ThemeHandler) GetByID(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	t, err := h.service.GetTheme(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, theme.ErrThemeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toThemeResponse(t))
}
