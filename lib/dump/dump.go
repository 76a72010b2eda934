package dump

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Sink writes named debug artifacts into a directory. writes are best
// effort: a failed write is logged, never fatal.
type Sink struct {
	dir string
}

func NewSink(dir string) (Sink, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return Sink{}, err
	}
	return Sink{dir: dir}, nil
}

func (s Sink) Write(name, contents string) {
	if s.dir == "" {
		return
	}
	path := filepath.Join(s.dir, name)
	err := os.WriteFile(path, []byte(contents), 0644)
	if err != nil {
		slog.Warn("failed to write debug artifact", "name", name, "err", err)
		return
	}
	slog.Debug("wrote debug artifact", "path", path)
}
