package mapping

import (
	"errors"
	"os"
	"path/filepath"
)

// Persistence 是映射快照的持久化协作方。实现方以不透明 JSON 字节为单位
// 读写单个逻辑键，可替换为任意键值后端。
type Persistence interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// ErrSnapshotMissing 表示尚无持久化快照。
var ErrSnapshotMissing = errors.New("mapping snapshot not found")

// FileSnapshot 把映射快照存到本地单个 JSON 文件，写入走临时文件加重命名，
// 读取方不会看到写了一半的文件。
type FileSnapshot struct {
	path string
}

// NewFileSnapshot 创建文件持久化实现。
func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{path: path}
}

// Load 读取上一次保存的快照字节。
func (f *FileSnapshot) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSnapshotMissing
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save 原子地写入快照字节。
func (f *FileSnapshot) Save(data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "mapping-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, f.path)
}
