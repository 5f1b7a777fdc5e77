package show

import (
	"strconv"
	"strings"

	"github.com/sanosuguru/go-planetarium-booking/internal/domain/theme"
)

// Show は上映番組エンティティを表す
type Show struct {
	ID          int64
	Title       string
	Description string
	Image       string // 保存済み画像の相対パス（未設定の場合は空）
	ThemeIDs    []int64
	Themes      []*theme.Theme // 詳細取得時のみ展開される
}

// NewShow は新しい番組を作成する
func NewShow(title, description string, themeIDs []int64) *Show {
	return &Show{
		Title:       title,
		Description: description,
		ThemeIDs:    themeIDs,
	}
}

// Validate は番組の検証を行う
func (s *Show) Validate() error {
	if s.Title == "" {
		return ErrTitleRequired
	}
	return nil
}

// Filter は番組一覧の絞り込み条件を表す
type Filter struct {
	Title    string  // タイトルの部分一致（大文字小文字を区別しない）
	ThemeIDs []int64 // いずれかのテーマに属する番組
}

// ParseThemeIDs はカンマ区切りのテーマID文字列をパースする
// 整数以外の要素が含まれる場合は ErrInvalidThemeID を返す
func ParseThemeIDs(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, ErrInvalidThemeID
		}
		ids = append(ids, id)
	}
	return ids, nil
}
