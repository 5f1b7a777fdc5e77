package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-planetarium-booking/internal/domain/dome"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/session"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/show"
)

// SessionRepository はセッションリポジトリのPostgreSQL実装
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository は新しいSessionRepositoryを作成する
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

type sessionRow struct {
	ID       int64     `db:"id"`
	ShowID   int64     `db:"astronomy_show_id"`
	DomeID   int64     `db:"planetarium_dome_id"`
	ShowTime time.Time `db:"show_time"`
}

func (r sessionRow) toEntity() *session.Session {
	return &session.Session{
		ID:       r.ID,
		ShowID:   r.ShowID,
		DomeID:   r.DomeID,
		ShowTime: r.ShowTime,
	}
}

// Create は新しいセッションを作成する
func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	query := `
		INSERT INTO show_sessions (astronomy_show_id, planetarium_dome_id, show_time)
		VALUES ($1, $2, $3)
		RETURNING id`

	if err := r.db.QueryRowxContext(ctx, query, s.ShowID, s.DomeID, s.ShowTime).Scan(&s.ID); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23503" {
			switch pgErr.Constraint {
			case "show_sessions_astronomy_show_id_fkey":
				return show.ErrShowNotFound
			case "show_sessions_planetarium_dome_id_fkey":
				return dome.ErrDomeNotFound
			}
		}
		return fmt.Errorf("セッションの作成に失敗: %w", err)
	}
	return nil
}

// GetByID はIDからセッションを取得する
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*session.Session, error) {
	query := `
		SELECT id, astronomy_show_id, planetarium_dome_id, show_time
		FROM show_sessions
		WHERE id = $1`

	var row sessionRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("セッションの取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// GetDetail はセッション詳細（予約済み座席込み）を取得する
func (r *SessionRepository) GetDetail(ctx context.Context, id int64) (*session.Detail, error) {
	query := `
		SELECT ss.id, ss.astronomy_show_id, s.title AS show_title,
		       ss.planetarium_dome_id, d.name AS dome_name,
		       d."rows" AS dome_rows, d.seats_in_row AS dome_seats,
		       ss.show_time
		FROM show_sessions ss
		JOIN astronomy_shows s ON s.id = ss.astronomy_show_id
		JOIN planetarium_domes d ON d.id = ss.planetarium_dome_id
		WHERE ss.id = $1`

	var row struct {
		ID        int64     `db:"id"`
		ShowID    int64     `db:"astronomy_show_id"`
		ShowTitle string    `db:"show_title"`
		DomeID    int64     `db:"planetarium_dome_id"`
		DomeName  string    `db:"dome_name"`
		DomeRows  int       `db:"dome_rows"`
		DomeSeats int       `db:"dome_seats"`
		ShowTime  time.Time `db:"show_time"`
	}
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("セッション詳細の取得に失敗: %w", err)
	}

	placesQuery := `
		SELECT "row", seat
		FROM tickets
		WHERE show_session_id = $1
		ORDER BY "row", seat`

	var placeRows []struct {
		Row  int `db:"row"`
		Seat int `db:"seat"`
	}
	if err := r.db.SelectContext(ctx, &placeRows, placesQuery, id); err != nil {
		return nil, fmt.Errorf("予約済み座席の取得に失敗: %w", err)
	}

	places := make([]session.Place, 0, len(placeRows))
	for _, p := range placeRows {
		places = append(places, session.Place{Row: p.Row, Seat: p.Seat})
	}

	return &session.Detail{
		ID:          row.ID,
		ShowID:      row.ShowID,
		ShowTitle:   row.ShowTitle,
		DomeID:      row.DomeID,
		DomeName:    row.DomeName,
		DomeRows:    row.DomeRows,
		DomeSeats:   row.DomeSeats,
		ShowTime:    row.ShowTime,
		TakenPlaces: places,
	}, nil
}

// List はフィルタ条件に合うセッション一覧を上映時刻の降順で取得する
// 空席数は capacity - count(tickets) として集計時に導出される
func (r *SessionRepository) List(ctx context.Context, filter session.Filter) ([]*session.ListItem, error) {
	conditions := []string{}
	args := []interface{}{}

	if filter.Date != nil {
		args = append(args, filter.Date.Format("2006-01-02"))
		conditions = append(conditions, fmt.Sprintf("ss.show_time::date = $%d", len(args)))
	}
	if filter.ShowID > 0 {
		args = append(args, filter.ShowID)
		conditions = append(conditions, fmt.Sprintf("ss.astronomy_show_id = $%d", len(args)))
	}

	query := `
		SELECT ss.id, s.title AS show_title, COALESCE(s.image, '') AS show_image,
		       d.name AS dome_name,
		       d."rows" * d.seats_in_row AS dome_capacity,
		       ss.show_time,
		       d."rows" * d.seats_in_row - COUNT(t.id) AS tickets_available
		FROM show_sessions ss
		JOIN astronomy_shows s ON s.id = ss.astronomy_show_id
		JOIN planetarium_domes d ON d.id = ss.planetarium_dome_id
		LEFT JOIN tickets t ON t.show_session_id = ss.id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += `
		GROUP BY ss.id, s.title, s.image, d.name, d."rows", d.seats_in_row, ss.show_time
		ORDER BY ss.show_time DESC`

	var rows []struct {
		ID               int64     `db:"id"`
		ShowTitle        string    `db:"show_title"`
		ShowImage        string    `db:"show_image"`
		DomeName         string    `db:"dome_name"`
		DomeCapacity     int       `db:"dome_capacity"`
		ShowTime         time.Time `db:"show_time"`
		TicketsAvailable int       `db:"tickets_available"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("セッション一覧の取得に失敗: %w", err)
	}

	items := make([]*session.ListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &session.ListItem{
			ID:               row.ID,
			ShowTitle:        row.ShowTitle,
			ShowImage:        row.ShowImage,
			DomeName:         row.DomeName,
			DomeCapacity:     row.DomeCapacity,
			ShowTime:         row.ShowTime,
			TicketsAvailable: row.TicketsAvailable,
		})
	}
	return items, nil
}

// Update はセッションを更新する
func (r *SessionRepository) Update(ctx context.Context, s *session.Session) error {
	query := `
		UPDATE show_sessions
		SET astronomy_show_id = $1, planetarium_dome_id = $2, show_time = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, s.ShowID, s.DomeID, s.ShowTime, s.ID)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23503" {
			switch pgErr.Constraint {
			case "show_sessions_astronomy_show_id_fkey":
				return show.ErrShowNotFound
			case "show_sessions_planetarium_dome_id_fkey":
				return dome.ErrDomeNotFound
			}
		}
		return fmt.Errorf("セッションの更新に失敗: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の確認に失敗: %w", err)
	}
	if affected == 0 {
		return session.ErrSessionNotFound
	}
	return nil
}

// Delete はセッションを削除する
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM show_sessions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("セッションの削除に失敗: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の確認に失敗: %w", err)
	}
	if affected == 0 {
		return session.ErrSessionNotFound
	}
	return nil
}

// CountTickets はセッションの発券済みチケット数を取得する
func (r *SessionRepository) CountTickets(ctx context.Context, id int64) (int, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE show_session_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("チケット数の取得に失敗: %w", err)
	}
	return count, nil
}

var _ session.Repository = (*SessionRepository)(nil)
