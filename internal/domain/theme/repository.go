package theme

import "context"

// Repository はテーマリポジトリのインターフェース
type Repository interface {
	// Create は新しいテーマを作成する
	Create(ctx context.Context, t *Theme) error

	// GetByID はIDからテーマを取得する
	GetByID(ctx context.Context, id int64) (*Theme, error)

	// List はテーマ一覧を名前順で取得する
	List(ctx context.Context) ([]*Theme, error)
}
