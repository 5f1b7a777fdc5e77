package show

import "errors"

// Show ドメインのエラー定義
var (
	ErrShowNotFound   = errors.New("番組が見つかりません")
	ErrTitleRequired  = errors.New("番組タイトルは必須です")
	ErrInvalidThemeID = errors.New("テーマIDはすべて整数である必要があります")
)
