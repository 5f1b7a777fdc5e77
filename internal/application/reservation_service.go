package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-planetarium-booking/internal/domain/dome"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/reservation"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/session"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/transaction"
	redisinfra "github.com/sanosuguru/go-planetarium-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-planetarium-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-planetarium-booking/internal/pkg/metrics"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ReservationService は予約の操作を提供する
type ReservationService struct {
	txManager       transaction.Manager
	reservationRepo reservation.Repository
	sessionRepo     session.Repository
	domeRepo        dome.Repository
	cache           *redisinfra.AvailabilityCache
}

func NewReservationService(
	tm transaction.Manager,
	rr reservation.Repository,
	sr session.Repository,
	dr dome.Repository,
	cache *redisinfra.AvailabilityCache,
) *ReservationService {
	return &ReservationService{
		txManager:       tm,
		reservationRepo: rr,
		sessionRepo:     sr,
		domeRepo:        dr,
		cache:           cache,
	}
}

type TicketInput struct {
	Row       int
	Seat      int
	SessionID int64
}

type CreateReservationInput struct {
	UserID  int64
	Tickets []TicketInput
}

// CreateReservation は複数チケットの予約を全件成功・全件失敗で作成する
// 座席の取り合いはデータベースの一意制約で解決され、敗者には ErrSeatTaken が返る
func (s *ReservationService) CreateReservation(ctx context.Context, input CreateReservationInput) (*reservation.Reservation, error) {
	tickets := make([]*reservation.Ticket, 0, len(input.Tickets))
	for _, t := range input.Tickets {
		tickets = append(tickets, &reservation.Ticket{
			Row:       t.Row,
			Seat:      t.Seat,
			SessionID: t.SessionID,
		})
	}

	res, err := reservation.NewReservation(input.UserID, tickets)
	if err != nil {
		s.recordReservation("validation_failed", 0)
		return nil, err
	}

	// セッションごとにドームのシートマップに対して座標を検証する
	ticketsBySession := make(map[int64][]*reservation.Ticket)
	for _, t := range res.Tickets {
		ticketsBySession[t.SessionID] = append(ticketsBySession[t.SessionID], t)
	}
	for sessionID, sessionTickets := range ticketsBySession {
		sess, err := s.sessionRepo.GetByID(ctx, sessionID)
		if err != nil {
			s.recordReservation("validation_failed", 0)
			return nil, err
		}
		d, err := s.domeRepo.GetByID(ctx, sess.DomeID)
		if err != nil {
			s.recordReservation("error", 0)
			return nil, fmt.Errorf("ドーム取得に失敗: %w", err)
		}
		for _, t := range sessionTickets {
			if err := d.ValidateSeat(t.Row, t.Seat); err != nil {
				s.recordReservation("validation_failed", 0)
				return nil, err
			}
		}
	}

	// 予約とチケットを1トランザクションで作成する
	// 検証と挿入の間に他の予約が確定しても、一意制約が重複を拒否する
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		s.recordReservation("error", 0)
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.reservationRepo.Create(ctx, tx, res); err != nil {
		if errors.Is(err, reservation.ErrSeatTaken) {
			s.recordReservation("conflict", 0)
		} else {
			s.recordReservation("error", 0)
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.recordReservation("error", 0)
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	for sessionID := range ticketsBySession {
		s.invalidateCache(ctx, sessionID)
	}
	s.recordReservation("success", len(res.Tickets))

	return res, nil
}

// GetUserReservations はユーザー自身の予約をセッション射影込みのページ単位で返す
// 戻り値の2番目はページングに関係なく全件数
func (s *ReservationService) GetUserReservations(ctx context.Context, userID int64, page, pageSize int) ([]*reservation.ListItem, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	total, err := s.reservationRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	items, err := s.reservationRepo.ListByUser(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *ReservationService) invalidateCache(ctx context.Context, sessionID int64) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, sessionID); err != nil {
			logger.Warn("キャッシュ無効化エラー", zap.Int64("session_id", sessionID), zap.Error(err))
		}
	}
}

func (s *ReservationService) recordReservation(status string, ticketCount int) {
	m := metrics.Get()
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(status).Inc()
	if ticketCount > 0 {
		m.TicketsSoldTotal.Add(float64(ticketCount))
	}
}
