package reservation

import (
	"context"

	"github.com/sanosuguru/go-planetarium-booking/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create は予約と全チケットを作成する（トランザクション必須）
	// いずれかのチケットが一意制約に違反した場合は ErrSeatTaken を返し、
	// 呼び出し側がトランザクション全体をロールバックする
	Create(ctx context.Context, tx transaction.Tx, r *Reservation) error

	// ListByUser はユーザーの予約一覧を作成日時の降順で取得する
	// 各チケットには上映セッションの一覧射影が展開される
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*ListItem, error)

	// CountByUserID はユーザーの予約総数を取得する
	CountByUserID(ctx context.Context, userID int64) (int, error)
}
