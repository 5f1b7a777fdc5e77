package show

import "context"

// Repository は番組リポジトリのインターフェース
type Repository interface {
	// Create は新しい番組を作成しテーマを関連付ける
	Create(ctx context.Context, s *Show) error

	// GetByID はIDから番組を取得する（テーマ展開込み）
	GetByID(ctx context.Context, id int64) (*Show, error)

	// List はフィルタ条件に合う番組一覧をタイトル順で取得する
	List(ctx context.Context, filter Filter) ([]*Show, error)

	// UpdateImage は番組の画像パスを更新する
	UpdateImage(ctx context.Context, id int64, image string) error
}
