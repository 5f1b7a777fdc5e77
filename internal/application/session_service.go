package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-planetarium-booking/internal/domain/dome"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/session"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/show"
	redisinfra "github.com/sanosuguru/go-planetarium-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-planetarium-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-planetarium-booking/internal/pkg/metrics"
)

const (
	availabilityCacheTTL = 30 * time.Second
)

// SessionService は上映セッションの操作を提供する
type SessionService struct {
	sessionRepo session.Repository
	showRepo    show.Repository
	domeRepo    dome.Repository
	cache       *redisinfra.AvailabilityCache
}

func NewSessionService(sr session.Repository, shr show.Repository, dr dome.Repository, cache *redisinfra.AvailabilityCache) *SessionService {
	return &SessionService{sessionRepo: sr, showRepo: shr, domeRepo: dr, cache: cache}
}

type CreateSessionInput struct {
	ShowID   int64
	DomeID   int64
	ShowTime time.Time
}

func (s *SessionService) CreateSession(ctx context.Context, input CreateSessionInput) (*session.Session, error) {
	sess := session.NewSession(input.ShowID, input.DomeID, input.ShowTime)
	if err := sess.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SessionService) GetSession(ctx context.Context, id int64) (*session.Session, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

func (s *SessionService) GetSessionDetail(ctx context.Context, id int64) (*session.Detail, error) {
	return s.sessionRepo.GetDetail(ctx, id)
}

func (s *SessionService) ListSessions(ctx context.Context, filter session.Filter) ([]*session.ListItem, error) {
	return s.sessionRepo.List(ctx, filter)
}

type UpdateSessionInput struct {
	ID       int64
	ShowID   int64
	DomeID   int64
	ShowTime time.Time
}

func (s *SessionService) UpdateSession(ctx context.Context, input UpdateSessionInput) (*session.Session, error) {
	sess, err := s.sessionRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	sess.ShowID = input.ShowID
	sess.DomeID = input.DomeID
	sess.ShowTime = input.ShowTime
	if err := sess.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.sessionRepo.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SessionService) DeleteSession(ctx context.Context, id int64) error {
	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.InvalidateCache(ctx, id)
	return nil
}

// CountAvailableSeats はセッションの空席数を返す
// 空席数は capacity - 発券済みチケット数 として導出され、短時間キャッシュされる
func (s *SessionService) CountAvailableSeats(ctx context.Context, sessionID int64) (int, error) {
	if s.cache != nil {
		count, err := s.cache.GetAvailableCount(ctx, sessionID)
		if err == nil {
			logger.Debug("キャッシュヒット", zap.Int64("session_id", sessionID), zap.Int("count", count))
			if m := metrics.Get(); m != nil {
				m.AvailabilityCacheTotal.WithLabelValues("hit").Inc()
			}
			return count, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("キャッシュ取得エラー", zap.Error(err))
		}
		if m := metrics.Get(); m != nil {
			m.AvailabilityCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	sess, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	d, err := s.domeRepo.GetByID(ctx, sess.DomeID)
	if err != nil {
		return 0, err
	}
	taken, err := s.sessionRepo.CountTickets(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	count := d.Capacity() - taken

	if s.cache != nil {
		if cacheErr := s.cache.SetAvailableCount(ctx, sessionID, count, availabilityCacheTTL); cacheErr != nil {
			logger.Warn("キャッシュ保存エラー", zap.Error(cacheErr))
		}
	}

	return count, nil
}

// InvalidateCache はセッションの空席数キャッシュを無効化する
func (s *SessionService) InvalidateCache(ctx context.Context, sessionID int64) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, sessionID); err != nil {
			logger.Warn("キャッシュ無効化エラー", zap.Error(err))
		}
	}
}
