package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-planetarium-booking/internal/domain/show"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/theme"
)

// ShowRepository は番組リポジトリのPostgreSQL実装
type ShowRepository struct {
	db *sqlx.DB
}

// NewShowRepository は新しいShowRepositoryを作成する
func NewShowRepository(db *sqlx.DB) *ShowRepository {
	return &ShowRepository{db: db}
}

type showRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Image       sql.NullString `db:"image"`
}

func (r showRow) toEntity() *show.Show {
	return &show.Show{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image.String,
	}
}

// Create は新しい番組を作成しテーマを関連付ける
func (r *ShowRepository) Create(ctx context.Context, s *show.Show) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO astronomy_shows (title, description) VALUES ($1, $2) RETURNING id`
	if err := tx.QueryRowxContext(ctx, query, s.Title, s.Description).Scan(&s.ID); err != nil {
		return fmt.Errorf("番組の作成に失敗: %w", err)
	}

	linkQuery := `INSERT INTO astronomy_show_themes (astronomy_show_id, theme_id) VALUES ($1, $2)`
	for _, themeID := range s.ThemeIDs {
		if _, err := tx.ExecContext(ctx, linkQuery, s.ID, themeID); err != nil {
			if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23503" {
				return theme.ErrThemeNotFound
			}
			return fmt.Errorf("テーマの関連付けに失敗: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("コミットに失敗: %w", err)
	}
	return nil
}

// GetByID はIDから番組を取得する（テーマ展開込み）
func (r *ShowRepository) GetByID(ctx context.Context, id int64) (*show.Show, error) {
	query := `SELECT id, title, description, image FROM astronomy_shows WHERE id = $1`

	var row showRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, show.ErrShowNotFound
		}
		return nil, fmt.Errorf("番組の取得に失敗: %w", err)
	}

	s := row.toEntity()
	themes, err := r.getThemes(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Themes = themes
	for _, t := range themes {
		s.ThemeIDs = append(s.ThemeIDs, t.ID)
	}
	return s, nil
}

// List はフィルタ条件に合う番組一覧をタイトル順で取得する
func (r *ShowRepository) List(ctx context.Context, filter show.Filter) ([]*show.Show, error) {
	conditions := []string{}
	args := []interface{}{}

	if filter.Title != "" {
		args = append(args, escapeLikePattern(filter.Title))
		conditions = append(conditions, fmt.Sprintf("s.title ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if len(filter.ThemeIDs) > 0 {
		args = append(args, pq.Array(filter.ThemeIDs))
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM astronomy_show_themes st WHERE st.astronomy_show_id = s.id AND st.theme_id = ANY($%d))",
			len(args)))
	}

	query := `SELECT s.id, s.title, s.description, s.image FROM astronomy_shows s`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY s.title"

	var rows []showRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("番組一覧の取得に失敗: %w", err)
	}

	shows := make([]*show.Show, 0, len(rows))
	for _, row := range rows {
		s := row.toEntity()
		themes, err := r.getThemes(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Themes = themes
		for _, t := range themes {
			s.ThemeIDs = append(s.ThemeIDs, t.ID)
		}
		shows = append(shows, s)
	}
	return shows, nil
}

// UpdateImage は番組の画像パスを更新する
func (r *ShowRepository) UpdateImage(ctx context.Context, id int64, image string) error {
	query := `UPDATE astronomy_shows SET image = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, image, id)
	if err != nil {
		return fmt.Errorf("画像パスの更新に失敗: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の確認に失敗: %w", err)
	}
	if affected == 0 {
		return show.ErrShowNotFound
	}
	return nil
}

// escapeLikePattern はLIKE/ILIKEのワイルドカード文字をリテラルとして扱えるようにする
// 利用者の入力した % や _ が部分一致の検索条件に化けるのを防ぐ
func escapeLikePattern(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *ShowRepository) getThemes(ctx context.Context, showID int64) ([]*theme.Theme, error) {
	query := `
		SELECT t.id, t.name
		FROM show_themes t
		JOIN astronomy_show_themes st ON st.theme_id = t.id
		WHERE st.astronomy_show_id = $1
		ORDER BY t.name`

	var rows []themeRow
	if err := r.db.SelectContext(ctx, &rows, query, showID); err != nil {
		return nil, fmt.Errorf("番組テーマの取得に失敗: %w", err)
	}

	themes := make([]*theme.Theme, 0, len(rows))
	for _, row := range rows {
		themes = append(themes, row.toEntity())
	}
	return themes, nil
}

var _ show.Repository = (*ShowRepository)(nil)
