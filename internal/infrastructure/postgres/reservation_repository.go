package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-planetarium-booking/internal/domain/reservation"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/session"
	"github.com/sanosuguru/go-planetarium-booking/internal/domain/transaction"
)

// ReservationRepository は予約リポジトリのPostgreSQL実装
type ReservationRepository struct {
	db *sqlx.DB
}

// NewReservationRepository は新しいReservationRepositoryを作成する
func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationRow struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

type ticketListRow struct {
	ID               int64     `db:"id"`
	Row              int       `db:"row"`
	Seat             int       `db:"seat"`
	ReservationID    int64     `db:"reservation_id"`
	SessionID        int64     `db:"session_id"`
	ShowTime         time.Time `db:"show_time"`
	ShowTitle        string    `db:"show_title"`
	ShowImage        string    `db:"show_image"`
	DomeName         string    `db:"dome_name"`
	DomeCapacity     int       `db:"dome_capacity"`
	TicketsAvailable int       `db:"tickets_available"`
}

// translateTicketInsertErr はチケット挿入エラーをドメインエラーに変換する
// 一意制約違反 (23505) は座席の取り合いに敗れたことを意味する
func translateTicketInsertErr(err error, row, seat int) error {
	if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
		return fmt.Errorf("座席(row=%d, seat=%d): %w", row, seat, reservation.ErrSeatTaken)
	}
	return fmt.Errorf("チケットの作成に失敗: %w", err)
}

// Create は予約と全チケットをひとつのトランザクション内で作成する
// 座席の取り合いは tickets テーブルの一意制約で解決され、
// 制約違反は ErrSeatTaken として返る
func (r *ReservationRepository) Create(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errors.New("無効なトランザクション")
	}

	query := `INSERT INTO reservations (user_id) VALUES ($1) RETURNING id, created_at`
	if err := sqlxTx.QueryRowxContext(ctx, query, res.UserID).Scan(&res.ID, &res.CreatedAt); err != nil {
		return fmt.Errorf("予約の作成に失敗: %w", err)
	}

	ticketQuery := `
		INSERT INTO tickets ("row", seat, show_session_id, reservation_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	for _, t := range res.Tickets {
		t.ReservationID = res.ID
		err := sqlxTx.QueryRowxContext(ctx, ticketQuery, t.Row, t.Seat, t.SessionID, t.ReservationID).Scan(&t.ID)
		if err != nil {
			return translateTicketInsertErr(err, t.Row, t.Seat)
		}
	}

	return nil
}

// ListByUser はユーザーの予約一覧を作成日時の降順で取得する
// 各チケットには上映セッションの一覧射影（番組・ドーム・残席数）が展開される
func (r *ReservationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*reservation.ListItem, error) {
	query := `
		SELECT id, user_id, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	var rows []reservationRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("予約一覧の取得に失敗: %w", err)
	}

	items := make([]*reservation.ListItem, 0, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		items = append(items, &reservation.ListItem{
			ID:        row.ID,
			CreatedAt: row.CreatedAt,
		})
		ids = append(ids, row.ID)
	}

	if len(ids) == 0 {
		return items, nil
	}

	tickets, err := r.getTicketListItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		item.Tickets = tickets[item.ID]
	}
	return items, nil
}

// CountByUserID はユーザーの予約総数を取得する
func (r *ReservationRepository) CountByUserID(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE user_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("予約数の取得に失敗: %w", err)
	}
	return count, nil
}

// getTicketListItems は複数予約のチケットをセッション射影込みでまとめて取得し、
// 予約IDごとにグループ化する。残席数は読み取り時に導出され、保存はされない
func (r *ReservationRepository) getTicketListItems(ctx context.Context, reservationIDs []int64) (map[int64][]*reservation.TicketListItem, error) {
	query := `
		SELECT t.id, t."row", t.seat, t.reservation_id,
		       ss.id AS session_id, ss.show_time,
		       s.title AS show_title, COALESCE(s.image, '') AS show_image,
		       d.name AS dome_name,
		       d."rows" * d.seats_in_row AS dome_capacity,
		       d."rows" * d.seats_in_row - (
		           SELECT COUNT(*) FROM tickets tt WHERE tt.show_session_id = ss.id
		       ) AS tickets_available
		FROM tickets t
		JOIN show_sessions ss ON ss.id = t.show_session_id
		JOIN astronomy_shows s ON s.id = ss.astronomy_show_id
		JOIN planetarium_domes d ON d.id = ss.planetarium_dome_id
		WHERE t.reservation_id = ANY($1)
		ORDER BY t."row", t.seat`

	var rows []ticketListRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(reservationIDs)); err != nil {
		return nil, fmt.Errorf("チケットの取得に失敗: %w", err)
	}

	grouped := make(map[int64][]*reservation.TicketListItem, len(reservationIDs))
	for _, row := range rows {
		grouped[row.ReservationID] = append(grouped[row.ReservationID], &reservation.TicketListItem{
			ID:   row.ID,
			Row:  row.Row,
			Seat: row.Seat,
			Session: session.ListItem{
				ID:               row.SessionID,
				ShowTitle:        row.ShowTitle,
				ShowImage:        row.ShowImage,
				DomeName:         row.DomeName,
				DomeCapacity:     row.DomeCapacity,
				ShowTime:         row.ShowTime,
				TicketsAvailable: row.TicketsAvailable,
			},
		})
	}
	return grouped, nil
}

var _ reservation.Repository = (*ReservationRepository)(nil)
