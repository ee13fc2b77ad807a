//go:build linux

package git

import (
	"os"
	"time"
)

// CreatedAt approximates a directory's creation time. Linux exposes no
// portable birth time through os.Stat, so the modification time is used.
func CreatedAt(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
