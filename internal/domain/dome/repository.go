package dome

import "context"

// Repository はドームリポジトリのインターフェース
type Repository interface {
	// Create は新しいドームを作成する
	Create(ctx context.Context, d *Dome) error

	// GetByID はIDからドームを取得する
	GetByID(ctx context.Context, id int64) (*Dome, error)

	// List はドーム一覧を取得する
	List(ctx context.Context) ([]*Dome, error)
}
