package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedFormat = errors.New("対応していない画像形式です")
)

// 受け付ける画像の拡張子
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Store は番組画像をローカルファイルシステムに保存する
type Store struct {
	root string
}

// NewStore は新しいStoreを作成する
// root が存在しない場合は作成する
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("メディアディレクトリの作成に失敗: %w", err)
	}
	return &Store{root: root}, nil
}

// Save は画像を保存し、保存先の相対パスを返す
// ファイル名の衝突を避けるためUUIDで命名する
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrUnsupportedFormat
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.root, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("画像ファイルの作成に失敗: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("画像の書き込みに失敗: %w", err)
	}

	return name, nil
}

// Remove は保存済みの画像を削除する
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.root, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("画像の削除に失敗: %w", err)
	}
	return nil
}
