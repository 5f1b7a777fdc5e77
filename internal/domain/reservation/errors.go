package reservation

import "errors"

// Reservation ドメインのエラー定義
var (
	ErrUserIDRequired = errors.New("ユーザーIDは必須です")
	ErrTicketsEmpty   = errors.New("チケットは1枚以上指定してください")
	ErrDuplicateSeat  = errors.New("同じ座席が複数指定されています")
	ErrSeatTaken      = errors.New("この座席は既に予約されています")
)
