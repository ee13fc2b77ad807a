//go:build windows

package git

import (
	"os"
	"syscall"
	"time"
)

// CreatedAt returns the directory's creation time from the Win32 attributes.
func CreatedAt(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	attrs, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return info.ModTime(), nil
	}
	return time.Unix(0, attrs.CreationTime.Nanoseconds()), nil
}
