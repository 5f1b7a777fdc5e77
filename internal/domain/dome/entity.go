package dome

import "fmt"

// Dome はプラネタリウムドームエンティティを表す
// 座席は rows × seats_in_row のグリッドで、座標は 1 始まり
type Dome struct {
	ID         int64
	Name       string
	Rows       int
	SeatsInRow int
}

// NewDome は新しいドームを作成する
func NewDome(name string, rows, seatsInRow int) *Dome {
	return &Dome{
		Name:       name,
		Rows:       rows,
		SeatsInRow: seatsInRow,
	}
}

// Capacity はドームの総座席数を返す
func (d *Dome) Capacity() int {
	return d.Rows * d.SeatsInRow
}

// Validate はドームの検証を行う
func (d *Dome) Validate() error {
	if d.Name == "" {
		return ErrNameRequired
	}
	if d.Rows < 1 {
		return ErrInvalidRows
	}
	if d.SeatsInRow < 1 {
		return ErrInvalidSeatsInRow
	}
	return nil
}

// ValidateSeat は座席座標がドームのシートマップ内にあるかを検証する
// 純粋な検証であり、副作用を持たない
func (d *Dome) ValidateSeat(row, seat int) error {
	if row < 1 || row > d.Rows {
		return fmt.Errorf("row は 1〜%d の範囲で指定してください（指定値: %d）: %w", d.Rows, row, ErrRowOutOfRange)
	}
	if seat < 1 || seat > d.SeatsInRow {
		return fmt.Errorf("seat は 1〜%d の範囲で指定してください（指定値: %d）: %w", d.SeatsInRow, seat, ErrSeatOutOfRange)
	}
	return nil
}
