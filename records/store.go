// Package records keeps an append-only log of submissions in a JSON-lines file.
package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// 提交结果
const (
	StatusOK          = "ok"
	StatusConfigError = "config_error"
	StatusFitError    = "fit_error"
)

// Record 记录一次提交的参数与原始文本。边距单位为英寸。
type Record struct {
	ID          int64     `json:"id"`
	Submitter   string    `json:"submitter"`
	Text        string    `json:"text"`
	MarginLeft  float64   `json:"margin_left"`
	MarginRight float64   `json:"margin_right"`
	Columns     int       `json:"num_columns"`
	FillBlanks  bool      `json:"fill_blanks"`
	Status      string    `json:"status"`
	Upload      string    `json:"upload,omitempty"`
	Output      string    `json:"output,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store 是线程安全的追加写存储。
type Store struct {
	mu     sync.Mutex
	path   string
	nextID int64
	now    func() time.Time
}

// Open 打开（必要时创建）path 处的记录文件，并从已有记录中恢复自增 ID。
func Open(path string) (*Store, error) {
	s := &Store{path: path, nextID: 1, now: time.Now}
	existing, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, rec := range existing {
		if rec.ID >= s.nextID {
			s.nextID = rec.ID + 1
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("创建记录文件失败: %w", err)
	}
	return s, f.Close()
}

// Append 分配 ID 与时间戳后写入一条记录，并返回写入后的记录。
func (s *Store) Append(rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC()
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return Record{}, fmt.Errorf("序列化记录失败: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return Record{}, fmt.Errorf("打开记录文件失败: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return Record{}, fmt.Errorf("写入记录失败: %w", err)
	}
	if err := f.Close(); err != nil {
		return Record{}, fmt.Errorf("写入记录失败: %w", err)
	}
	s.nextID++
	return rec, nil
}

// List 按写入顺序返回全部记录。文件不存在时返回空列表。
func (s *Store) List() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("打开记录文件失败: %w", err)
	}
	defer f.Close()
	return decode(f)
}

// decode 逐个解码 JSON 对象，不限制单条记录的长度。
func decode(r io.Reader) ([]Record, error) {
	out := []Record{}
	dec := json.NewDecoder(r)
	for dec.More() {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("记录文件第 %d 条记录损坏: %w", len(out)+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
