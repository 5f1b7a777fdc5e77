package session

import (
	"time"
)

// Session は上映セッションエンティティを表す
// 1つの番組を1つのドームで特定時刻に上映する
type Session struct {
	ID       int64
	ShowID   int64
	DomeID   int64
	ShowTime time.Time
}

// NewSession は新しいセッションを作成する
func NewSession(showID, domeID int64, showTime time.Time) *Session {
	return &Session{
		ShowID:   showID,
		DomeID:   domeID,
		ShowTime: showTime,
	}
}

// Validate はセッションの検証を行う
func (s *Session) Validate() error {
	if s.ShowID <= 0 {
		return ErrShowIDRequired
	}
	if s.DomeID <= 0 {
		return ErrDomeIDRequired
	}
	if s.ShowTime.IsZero() {
		return ErrShowTimeRequired
	}
	return nil
}

// Filter はセッション一覧の絞り込み条件を表す
type Filter struct {
	Date   *time.Time // show_time の日付部分との一致（時刻は無視）
	ShowID int64      // 0 の場合は絞り込まない
}

// ListItem はセッション一覧の読み取り専用ビュー
// TicketsAvailable は読み取り時に導出され、保存はされない
type ListItem struct {
	ID               int64
	ShowTitle        string
	ShowImage        string
	DomeName         string
	DomeCapacity     int
	ShowTime         time.Time
	TicketsAvailable int
}

// Place は予約済み座席の座標
type Place struct {
	Row  int
	Seat int
}

// Detail はセッション詳細の読み取り専用ビュー
type Detail struct {
	ID          int64
	ShowID      int64
	ShowTitle   string
	DomeID      int64
	DomeName    string
	DomeRows    int
	DomeSeats   int
	ShowTime    time.Time
	TakenPlaces []Place // row, seat 順
}
