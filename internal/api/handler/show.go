package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-planetarium-booking/internal/application"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/show"
)

type ShowHandler struct {
	service ShowServiceInterface
}

func NewShowHandler(s ShowServiceInterface) *ShowHandler {
	return &ShowHandler{service: s}
}

type CreateShowRequest struct {
	Title       string  `json:"title" validate:"required" example:"Journey to the Edge"`
	Description string  `json:"description" example:"A tour of the observable universe"`
	ThemeIDs    []int64 `json:"themes" example:"1,2"`
}

type ShowListResponse struct {
	ID          int64    `json:"id" example:"1"`
	Title       string   `json:"title" example:"Journey to the Edge"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	Themes      []string `json:"themes"`
}

type ShowDetailResponse struct {
	ID          int64           `json:"id" example:"1"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image,omitempty"`
	Themes      []ThemeResponse `json:"themes"`
}

func toShowListResponse(s *show.Show) ShowListResponse {
	names := make([]string, len(s.Themes))
	for i, t := range s.Themes {
		names[i] = t.Name
	}
	return ShowListResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Image:       s.Image,
		Themes:      names,
	}
}

func toShowDetailResponse(s *show.Show) ShowDetailResponse {
	themes := make([]ThemeResponse, len(s.Themes))
	for i, t := range s.Themes {
		themes[i] = toThemeResponse(t)
	}
	return ShowDetailResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Image:       s.Image,
		Themes:      themes,
	}
}

// Create は新しい番組を作成する
func (h *ShowHandler) Create(c echo.Context) error {
	var req CreateShowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	s, err := h.service.CreateShow(c.Request().Context(), application.CreateShowInput{
		Title:       req.Title,
		Description: req.Description,
		ThemeIDs:    req.ThemeIDs,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, toShowDetailResponse(s))
}

// List はフィルタ条件に合う番組一覧を返す
// title はタイトルの部分一致、themes はカンマ区切りのテーマID
func (h *ShowHandler) List(c echo.Context) error {
	themeIDs, err := show.ParseThemeIDs(c.QueryParam("themes"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	filter := show.Filter{
		Title:    c.QueryParam("title"),
		ThemeIDs: themeIDs,
	}
	shows, err := h.service.ListShows(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]ShowListResponse, len(shows))
	for i, s := range shows {
		resp[i] = toShowListResponse(s)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetByID は指定IDの番組を返す
func (h *ShowHandler) GetByID(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	s, err := h.service.GetShow(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, show.ErrShowNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toShowDetailResponse(s))
}

// UploadImage は番組のポスター画像をアップロードする
// multipart/form-data の image フィールドを受け取る
func (h *ShowHandler) UploadImage(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image フィールドが必要です")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "画像を読み込めません")
	}
	defer src.Close()

	s, err := h.service.UploadImage(c.Request().Context(), id, file.Filename, src)
	if err != nil {
		if errors.Is(err, show.ErrShowNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, toShowDetailResponse(s))
}
