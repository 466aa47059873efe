package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// MaxLogBytes is the size at which the log is rotated on startup.
const MaxLogBytes = 1 << 20

// RotateLogIfNeeded renames path to path+".old" once it exceeds maxBytes,
// replacing any previous backup.
func RotateLogIfNeeded(path string, maxBytes int64) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxBytes {
		return
	}
	oldPath := path + ".old"
	_ = os.Remove(oldPath)
	if err := os.Rename(path, oldPath); err != nil {
		log.Printf("Failed to rotate log %s: %v", path, err)
	}
}

// OpenLog rotates and opens dir/name for appending and points the standard logger at it.
// The caller closes the returned file.
func OpenLog(dir, name string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, name)
	RotateLogIfNeeded(path, MaxLogBytes)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}
