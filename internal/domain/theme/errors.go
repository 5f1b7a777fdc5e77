package theme

import "errors"

// Theme ドメインのエラー定義
var (
	ErrThemeNotFound = errors.New("テーマが見つかりません")
	ErrNameRequired  = errors.New("テーマ名は必須です")
)
