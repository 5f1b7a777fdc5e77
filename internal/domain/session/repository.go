package session

import "context"

// Repository はセッションリポジトリのインターフェース
type Repository interface {
	// Create は新しいセッションを作成する
	Create(ctx context.Context, s *Session) error

	// GetByID はIDからセッションを取得する
	GetByID(ctx context.Context, id int64) (*Session, error)

	// GetDetail はセッション詳細（予約済み座席込み）を取得する
	GetDetail(ctx context.Context, id int64) (*Detail, error)

	// List はフィルタ条件に合うセッション一覧を上映時刻の降順で取得する
	// 各要素の空席数は capacity - count(tickets) として読み取り時に計算される
	List(ctx context.Context, filter Filter) ([]*ListItem, error)

	// Update はセッションを更新する
	Update(ctx context.Context, s *Session) error

	// Delete はセッションを削除する
	Delete(ctx context.Context, id int64) error

	// CountTickets はセッションの発券済みチケット数を取得する
	CountTickets(ctx context.Context, id int64) (int, error)
}
