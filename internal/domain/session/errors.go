package session

import "errors"

// Session ドメインのエラー定義
var (
	ErrSessionNotFound  = errors.New("セッションが見つかりません")
	ErrShowIDRequired   = errors.New("番組IDは必須です")
	ErrDomeIDRequired   = errors.New("ドームIDは必須です")
	ErrShowTimeRequired = errors.New("上映時刻は必須です")
	ErrInvalidDate      = errors.New("日付は YYYY-MM-DD 形式で指定してください")
	ErrInvalidShowID    = errors.New("番組IDは整数である必要があります")
)
