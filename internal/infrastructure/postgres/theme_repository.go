package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-planetarium-booking/internal/domain/theme"
)

// ThemeRepository はテーマリポジトリのPostgreSQL実装
type ThemeRepository struct {
	db *sqlx.DB
}

// NewThemeRepository は新しいThemeRepositoryを作成する
func NewThemeRepository(db *sqlx.DB) *ThemeRepository {
	return &ThemeRepository{db: db}
}

type themeRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

func (r themeRow) toEntity() *theme.Theme {
	return &theme.Theme{ID: r.ID, Name: r.Name}
}

// Create は新しいテーマを作成する
func (r *ThemeRepository) Create(ctx context.Context, t *theme.Theme) error {
	query := `INSERT INTO show_themes (name) VALUES ($1) RETURNING id`

	if err := r.db.QueryRowxContext(ctx, query, t.Name).Scan(&t.ID); err != nil {
		return fmt.Errorf("テーマの作成に失敗: %w", err)
	}
	return nil
}

// GetByID はIDからテーマを取得する
func (r *ThemeRepository) GetByID(ctx context.Context, id int64) (*theme.Theme, error) {
	query := `SELECT id, name FROM show_themes WHERE id = $1`

	var row themeRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, theme.ErrThemeNotFound
		}
		return nil, fmt.Errorf("テーマの取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// List はテーマ一覧を名前順で取得する
func (r *ThemeRepository) List(ctx context.Context) ([]*theme.Theme, error) {
	query := `SELECT id, name FROM show_themes ORDER BY name`

	var rows []themeRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("テーマ一覧の取得に失敗: %w", err)
	}

	themes := make([]*theme.Theme, 0, len(rows))
	for _, row := range rows {
		themes = append(themes, row.toEntity())
	}
	return themes, nil
}

var _ theme.Repository = (*ThemeRepository)(nil)
