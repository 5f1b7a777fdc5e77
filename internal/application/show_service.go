package application

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-planetarium-booking/internal/domain/show"
	"github.com/sanosuguru/go-planetarium-booking/internal/infrastructure/media"
	"github.com/sanosuguru/go-planetarium-booking/internal/pkg/logger"
)

// ShowService は番組の操作を提供する
type ShowService struct {
	showRepo show.Repository
	media    *media.Store
}

func NewShowService(sr show.Repository, m *media.Store) *ShowService {
	return &ShowService{showRepo: sr, media: m}
}

type CreateShowInput struct {
	Title       string
	Description string
	ThemeIDs    []int64
}

func (s *ShowService) CreateShow(ctx context.Context, input CreateShowInput) (*show.Show, error) {
	sh := show.NewShow(input.Title, input.Description, input.ThemeIDs)
	if err := sh.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.showRepo.Create(ctx, sh); err != nil {
		return nil, fmt.Errorf("番組作成に失敗しました: %w", err)
	}
	return s.showRepo.GetByID(ctx, sh.ID)
}

func (s *ShowService) GetShow(ctx context.Context, id int64) (*show.Show, error) {
	return s.showRepo.GetByID(ctx, id)
}

func (s *ShowService) ListShows(ctx context.Context, filter show.Filter) ([]*show.Show, error) {
	return s.showRepo.List(ctx, filter)
}

// UploadImage は番組のポスター画像を保存し、旧画像を置き換える
func (s *ShowService) UploadImage(ctx context.Context, id int64, filename string, r io.Reader) (*show.Show, error) {
	sh, err := s.showRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := s.media.Save(filename, r)
	if err != nil {
		return nil, err
	}

	if err := s.showRepo.UpdateImage(ctx, id, name); err != nil {
		if removeErr := s.media.Remove(name); removeErr != nil {
			logger.Warn("画像の後始末に失敗", zap.Error(removeErr))
		}
		return nil, err
	}

	// 置き換え前の画像は残さない
	if sh.Image != "" && sh.Image != name {
		if err := s.media.Remove(sh.Image); err != nil {
			logger.Warn("旧画像の削除に失敗", zap.String("image", sh.Image), zap.Error(err))
		}
	}

	sh.Image = name
	return sh, nil
}
