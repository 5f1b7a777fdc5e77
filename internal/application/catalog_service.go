package application

import (
	"context"
	"fmt"

	"github.com/sanosuguru/go-planetarium-booking/internal/domain/dome"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/theme"
)

// CatalogService はテーマとドームのカタログ操作を提供する
type CatalogService struct {
	themeRepo theme.Repository
	domeRepo  dome.Repository
}

func NewCatalogService(tr theme.Repository, dr dome.Repository) *CatalogService {
	return &CatalogService{themeRepo: tr, domeRepo: dr}
}

func (s *CatalogService) CreateTheme(ctx context.Context, name string) (*theme.Theme, error) {
	t := theme.NewTheme(name)
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.themeRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("テーマ作成に失敗しました: %w", err)
	}
	return t, nil
}

func (s *CatalogService) GetTheme(ctx context.Context, id int64) (*theme.Theme, error) {
	return s.themeRepo.GetByID(ctx, id)
}

func (s *CatalogService) ListThemes(ctx context.Context) ([]*theme.Theme, error) {
	return s.themeRepo.List(ctx)
}

type CreateDomeInput struct {
	Name       string
	Rows       int
	SeatsInRow int
}

func (s *CatalogService) CreateDome(ctx context.Context, input CreateDomeInput) (*dome.Dome, error) {
	d := dome.NewDome(input.Name, input.Rows, input.SeatsInRow)
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.domeRepo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("ドーム作成に失敗しました: %w", err)
	}
	return d, nil
}

func (s *CatalogService) GetDome(ctx context.Context, id int64) (*dome.Dome, error) {
	return s.domeRepo.GetByID(ctx, id)
}

func (s *CatalogService) ListDomes(ctx context.Context) ([]*dome.Dome, error) {
	return s.domeRepo.List(ctx)
}
