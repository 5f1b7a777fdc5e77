package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-planetarium-booking/internal/domain/dome"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/reservation"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/session"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/transaction"
)

// === Mock implementations ===

// MockTxManager implements transaction.Manager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(transaction.Tx), args.Error(1)
}

// MockTx implements transaction.Tx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockReservationRepository implements reservation.Repository
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, tx transaction.Tx, r *reservation.Reservation) error {
	args := m.Called(ctx, tx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*reservation.ListItem, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.ListItem), args.Error(1)
}

func (m *MockReservationRepository) CountByUserID(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockSessionRepository implements session.Repository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id int64) (*session.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionRepository) GetDetail(ctx context.Context, id int64) (*session.Detail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Detail), args.Error(1)
}

func (m *MockSessionRepository) List(ctx context.Context, filter session.Filter) ([]*session.ListItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*session.ListItem), args.Error(1)
}

func (m *MockSessionRepository) Update(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) CountTickets(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// MockDomeRepository implements dome.Repository
type MockDomeRepository struct {
	mock.Mock
}

func (m *MockDomeRepository) Create(ctx context.Context, d *dome.Dome) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDomeRepository) GetByID(ctx context.Context, id int64) (*dome.Dome, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dome.Dome), args.Error(1)
}

func (m *MockDomeRepository) List(ctx context.Context) ([]*dome.Dome, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dome.Dome), args.Error(1)
}

// === Test helper ===

type testDeps struct {
	txManager   *MockTxManager
	tx          *MockTx
	resRepo     *MockReservationRepository
	sessionRepo *MockSessionRepository
	domeRepo    *MockDomeRepository
	service     *ReservationService
}

func newTestDeps() *testDeps {
	txm := new(MockTxManager)
	tx := new(MockTx)
	resRepo := new(MockReservationRepository)
	sessionRepo := new(MockSessionRepository)
	domeRepo := new(MockDomeRepository)

	// キャッシュなしで動作する
	service := NewReservationService(txm, resRepo, sessionRepo, domeRepo, nil)

	return &testDeps{
		txManager:   txm,
		tx:          tx,
		resRepo:     resRepo,
		sessionRepo: sessionRepo,
		domeRepo:    domeRepo,
		service:     service,
	}
}

// === Tests ===

func TestReservationService_CreateReservation_Success(t *testing.T) {
	deps := newTestDeps()
	ctx := context.Background()

	input := CreateReservationInput{
		UserID: 10,
		Tickets: []TicketInput{
			{Row: 1, Seat: 1, SessionID: 5},
			{Row: 1, Seat: 2, SessionID: 5},
		},
	}

	// Setup mocks
	sess := &session.Session{ID: 5, ShowID: 1, DomeID: 2, ShowTime: time.Now().Add(time.Hour)}
	deps.sessionRepo.On("GetByID", ctx, int64(5)).Return(sess, nil)

	d := &dome.Dome{ID: 2, Name: "Main Dome", Rows: 10, SeatsInRow: 12}
	deps.domeRepo.On("GetByID", ctx, int64(2)).Return(d, nil)

	deps.txManager.On("Begin", ctx).Return(deps.tx, nil)
	deps.tx.On("Rollback").Return(nil)
	deps.tx.On("Commit").Return(nil)
	deps.resRepo.On("Create", ctx, deps.tx, mock.AnythingOfType("*reservation.Reservation")).Return(nil)

	// Execute
	result, err := deps.service.CreateReservation(ctx, input)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(10), result.UserID)
	assert.Len(t, result.Tickets, 2)

	deps.txManager.AssertExpectations(t)
	deps.resRepo.AssertExpectations(t)
	deps.sessionRepo.AssertExpectations(t)
	deps.domeRepo.AssertExpectations(t)
}

func TestReservationService_CreateReservation_EmptyTickets(t *testing.T) {
	deps := newTestDeps()
	ctx := context.Background()

	input := CreateReservationInput{UserID: 10}

	// Execute
	result, err := deps.service.CreateReservation(ctx, input)

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, reservation.ErrTicketsEmpty)
	// No repository or transaction calls before validation passes
	deps.sessionRepo.AssertNotCalled(t, "GetByID")
	deps.txManager.AssertNotCalled(t, "Begin")
}

func TestReservationService_CreateReservation_DuplicateSeat(t *testing.T) {
	deps := newTestDeps()
	ctx := context.Background()

	input := CreateReservationInput{
		UserID: 10,
		Tickets: []TicketInput{
			{Row: 3, Seat: 4, SessionID: 5},
			{Row: 3, Seat: 4, SessionID: 5},
		},
	}

	// Execute
	result, err := deps.service.CreateReservation(ctx, input)

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, reservation.ErrDuplicateSeat)
	deps.txManager.AssertNotCalled(t, "Begin")
}

func TestReservationService_CreateReservation_SessionNotFound(t *testing.T) {
	deps := newTestDeps()
	ctx := context.Background()

	input := CreateReservationInput{
		UserID:  10,
		Tickets: []TicketInput{{Row: 1, Seat: 1, SessionID: 999}},
	}

	deps.sessionRepo.On("GetByID", ctx, int64(999)).Return(nil, session.ErrSessionNotFound)

	// Execute
	result, err := deps.service.CreateReservation(ctx, input)

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	deps.txManager.AssertNotCalled(t, "Begin")
}

func TestReservationService_CreateReservation_SeatOutOfRange(t *testing.T) {
	deps := newTestDeps()
	ctx := context.Background()

	input := CreateReservationInput{
		UserID:  10,
		Tickets: []TicketInput{{Row: 6, Seat: 1, SessionID: 5}},
	}

	sess := &session.Session{ID: 5, ShowID: 1, DomeID: 2, ShowTime: time.Now().Add(time.Hour)}
	deps.sessionRepo.On("GetByID", ctx, int64(5)).Return(sess, nil)

	// 5x5 のドームに row=6 を指定
	d := &dome.Dome{ID: 2, Name: "Small Dome", Rows: 5, SeatsInRow: 5}
	deps.domeRepo.On("GetByID", ctx, int64(2)).Return(d, nil)

	// Execute
	result, err := deps.service.CreateReservation(ctx, input)

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, dome.ErrRowOutOfRange)
	deps.txManager.AssertNotCalled(t, "Begin")
}

func TestReservationService_CreateReservation_SeatTaken(t *testing.T) {
	deps := newTestDeps()
	ctx := context.Background()

	input := CreateReservationInput{
		UserID:  10,
		Tickets: []TicketInput{{Row: 2, Seat: 3, SessionID: 5}},
	}

	sess := &session.Session{ID: 5, ShowID: 1, DomeID: 2, ShowTime: time.Now().Add(time.Hour)}
	deps.sessionRepo.On("GetByID", ctx, int64(5)).Return(sess, nil)

	d := &dome.Dome{ID: 2, Name: "Main Dome", Rows: 10, SeatsInRow: 12}
	deps.domeRepo.On("GetByID", ctx, int64(2)).Return(d, nil)

	deps.txManager.On("Begin", ctx).Return(deps.tx, nil)
	deps.tx.On("Rollback").Return(nil)

	// 一意制約違反がリポジトリから ErrSeatTaken として返る
	takenErr := fmt.Errorf("座席(row=2, seat=3): %w", reservation.ErrSeatTaken)
	deps.resRepo.On("Create", ctx, deps.tx, mock.AnythingOfType("*reservation.Reservation")).Return(takenErr)

	// Execute
	result, err := deps.service.CreateReservation(ctx, input)

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, reservation.ErrSeatTaken)
	deps.tx.AssertNotCalled(t, "Commit")
	deps.tx.AssertCalled(t, "Rollback")
}

func TestReservationService_CreateReservation_CommitFailed(t *testing.T) {
	deps := newTestDeps()
	ctx := context.Background()

	input := CreateReservationInput{
		UserID:  10,
		Tickets: []TicketInput{{Row: 1, Seat: 1, SessionID: 5}},
	}

	sess := &session.Session{ID: 5, ShowID: 1, DomeID: 2, ShowTime: time.Now().Add(time.Hour)}
	deps.sessionRepo.On("GetByID", ctx, int64(5)).Return(sess, nil)

	d := &dome.Dome{ID: 2, Name: "Main Dome", Rows: 10, SeatsInRow: 12}
	deps.domeRepo.On("GetByID", ctx, int64(2)).Return(d, nil)

	deps.txManager.On("Begin", ctx).Return(deps.tx, nil)
	deps.tx.On("Rollback").Return(nil)
	deps.tx.On("Commit").Return(errors.New("connection lost"))
	deps.resRepo.On("Create", ctx, deps.tx, mock.AnythingOfType("*reservation.Reservation")).Return(nil)

	// Execute
	result, err := deps.service.CreateReservation(ctx, input)

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "コミットに失敗")
}

func TestReservationService_GetUserReservations(t *testing.T) {
	t.Run("デフォルトのページサイズ", func(t *testing.T) {
		deps := newTestDeps()
		ctx := context.Background()

		deps.resRepo.On("CountByUserID", ctx, int64(10)).Return(25, nil)
		deps.resRepo.On("ListByUser", ctx, int64(10), 10, 0).
			Return([]*reservation.ListItem{}, nil)

		_, total, err := deps.service.GetUserReservations(ctx, 10, 0, 0)

		require.NoError(t, err)
		assert.Equal(t, 25, total)
		deps.resRepo.AssertExpectations(t)
	})

	t.Run("ページサイズの上限", func(t *testing.T) {
		deps := newTestDeps()
		ctx := context.Background()

		deps.resRepo.On("CountByUserID", ctx, int64(10)).Return(500, nil)
		deps.resRepo.On("ListByUser", ctx, int64(10), 100, 100).
			Return([]*reservation.ListItem{}, nil)

		_, _, err := deps.service.GetUserReservations(ctx, 10, 2, 1000)

		require.NoError(t, err)
		deps.resRepo.AssertExpectations(t)
	})
}
