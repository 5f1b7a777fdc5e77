package reservation

import (
	"fmt"
	"time"

	"github.com/sanosuguru/go-planetarium-booking/internal/domain/session"
)

// Ticket は1座席分のチケットを表す
// 同一セッション内で (row, seat) は全チケットを通して一意
type Ticket struct {
	ID            int64
	Row           int
	Seat          int
	SessionID     int64
	ReservationID int64
}

// Reservation は予約エンティティを表す
// 1回のリクエストで作成され、以後変更も削除もされない
type Reservation struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	Tickets   []*Ticket
}

// NewReservation は新しい予約を作成する
// チケットが空の場合は作成できない
func NewReservation(userID int64, tickets []*Ticket) (*Reservation, error) {
	r := &Reservation{
		UserID:  userID,
		Tickets: tickets,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// TicketListItem は予約一覧でのチケットの読み取り専用ビュー
// 座席に加えて上映セッションの一覧射影（番組・ドーム・残席数）を含む
type TicketListItem struct {
	ID      int64
	Row     int
	Seat    int
	Session session.ListItem
}

// ListItem は予約一覧の読み取り専用ビュー
type ListItem struct {
	ID        int64
	CreatedAt time.Time
	Tickets   []*TicketListItem
}

// Validate は予約の検証を行う
func (r *Reservation) Validate() error {
	if r.UserID <= 0 {
		return ErrUserIDRequired
	}
	if len(r.Tickets) == 0 {
		return ErrTicketsEmpty
	}

	// 同一リクエスト内の座席重複を検出する
	// 永続層の一意制約に到達する前に分かりやすいエラーを返すための事前チェックであり、
	// 競合の防止自体は制約が担う
	type key struct {
		session   int64
		row, seat int
	}
	seen := make(map[key]struct{}, len(r.Tickets))
	for _, t := range r.Tickets {
		k := key{t.SessionID, t.Row, t.Seat}
		if _, ok := seen[k]; ok {
			return fmt.Errorf("座席(row=%d, seat=%d)が重複して指定されています: %w", t.Row, t.Seat, ErrDuplicateSeat)
		}
		seen[k] = struct{}{}
	}
	return nil
}
