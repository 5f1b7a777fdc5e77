package dome

import "errors"

// Dome ドメインのエラー定義
var (
	ErrDomeNotFound      = errors.New("ドームが見つかりません")
	ErrNameRequired      = errors.New("ドーム名は必須です")
	ErrInvalidRows       = errors.New("行数は1以上である必要があります")
	ErrInvalidSeatsInRow = errors.New("1行あたりの座席数は1以上である必要があります")
	ErrRowOutOfRange     = errors.New("行番号がシートマップの範囲外です")
	ErrSeatOutOfRange    = errors.New("座席番号がシートマップの範囲外です")
)
