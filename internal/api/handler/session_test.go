package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-planetarium-booking/internal/application"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/session"
)

// MockSessionService はSessionServiceInterfaceのモック
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) CreateSession(ctx context.Context, input application.CreateSessionInput) (*session.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionService) GetSession(ctx context.Context, id int64) (*session.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionService) GetSessionDetail(ctx context.Context, id int64) (*session.Detail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Detail), args.Error(1)
}

func (m *MockSessionService) ListSessions(ctx context.Context, filter session.Filter) ([]*session.ListItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*session.ListItem), args.Error(1)
}

func (m *MockSessionService) UpdateSession(ctx context.Context, input application.UpdateSessionInput) (*session.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionService) DeleteSession(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionService) CountAvailableSeats(ctx context.Context, sessionID int64) (int, error) {
	args := m.Called(ctx, sessionID)
	return args.Int(0), args.Error(1)
}

func TestSessionHandler_List(t *testing.T) {
	e := NewTestEcho()

	t.Run("空席数込みの一覧が返る", func(t *testing.T) {
		mockService := new(MockSessionService)
		showTime := time.Date(2025, 7, 1, 19, 0, 0, 0, time.UTC)
		items := []*session.ListItem{
			{
				ID:               1,
				ShowTitle:        "Journey to the Edge",
				DomeName:         "Main Dome",
				DomeCapacity:     120,
				ShowTime:         showTime,
				TicketsAvailable: 90,
			},
		}
		mockService.On("ListSessions", mock.Anything, session.Filter{}).Return(items, nil)

		handler := NewSessionHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/show_sessions", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.List(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp []SessionListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, 90, resp[0].TicketsAvailable)
		assert.Equal(t, 120, resp[0].DomeCapacity)
		mockService.AssertExpectations(t)
	})

	t.Run("日付フィルタが渡される", func(t *testing.T) {
		mockService := new(MockSessionService)
		date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
		mockService.On("ListSessions", mock.Anything, session.Filter{Date: &date}).
			Return([]*session.ListItem{}, nil)

		handler := NewSessionHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/show_sessions?date=2025-07-01", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.List(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("不正な日付は400", func(t *testing.T) {
		mockService := new(MockSessionService)
		handler := NewSessionHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/show_sessions?date=July-1st", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.List(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
		mockService.AssertNotCalled(t, "ListSessions")
	})

	t.Run("不正な番組IDは400", func(t *testing.T) {
		mockService := new(MockSessionService)
		handler := NewSessionHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/show_sessions?astronomy_show=abc", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.List(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func TestSessionHandler_GetByID(t *testing.T) {
	e := NewTestEcho()

	t.Run("予約済み座席込みの詳細が返る", func(t *testing.T) {
		mockService := new(MockSessionService)
		detail := &session.Detail{
			ID:        1,
			ShowID:    2,
			ShowTitle: "Journey to the Edge",
			DomeID:    3,
			DomeName:  "Main Dome",
			DomeRows:  10,
			DomeSeats: 12,
			ShowTime:  time.Now(),
			TakenPlaces: []session.Place{
				{Row: 1, Seat: 1},
				{Row: 1, Seat: 2},
			},
		}
		mockService.On("GetSessionDetail", mock.Anything, int64(1)).Return(detail, nil)

		handler := NewSessionHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/show_sessions/1", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")

		err := handler.GetByID(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp SessionDetailResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.TakenPlaces, 2)
		assert.Equal(t, 1, resp.TakenPlaces[0].Row)
	})

	t.Run("存在しないセッションは404", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("GetSessionDetail", mock.Anything, int64(999)).
			Return(nil, session.ErrSessionNotFound)

		handler := NewSessionHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/show_sessions/999", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("999")

		err := handler.GetByID(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}

func TestSessionHandler_Availability(t *testing.T) {
	e := NewTestEcho()

	mockService := new(MockSessionService)
	mockService.On("CountAvailableSeats", mock.Anything, int64(5)).Return(42, nil)

	handler := NewSessionHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/show_sessions/5/availability", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")

	err := handler.Availability(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.SessionID)
	assert.Equal(t, 42, resp.Available)
}
