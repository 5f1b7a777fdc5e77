package theme

// Theme は上映テーマエンティティを表す
type Theme struct {
	ID   int64
	Name string
}

// NewTheme は新しいテーマを作成する
func NewTheme(name string) *Theme {
	return &Theme{Name: name}
}

// Validate はテーマの検証を行う
func (t *Theme) Validate() error {
	if t.Name == "" {
		return ErrNameRequired
	}
	return nil
}
