package audit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// JSONLAppender writes audit records as JSON lines to a local file. The
// default sink; works without any external credentials.
type JSONLAppender struct {
	mu   sync.Mutex
	path string
}

// NewJSONLAppender ensures the parent directory exists and returns the
// appender.
func NewJSONLAppender(path string) (*JSONLAppender, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return &JSONLAppender{path: path}, nil
}

// Append writes one JSON line.
func (a *JSONLAppender) Append(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}
