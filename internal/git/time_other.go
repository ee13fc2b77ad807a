//go:build !darwin && !linux && !windows

package git

import (
	"os"
	"time"
)

// CreatedAt falls back to the modification time.
func CreatedAt(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
