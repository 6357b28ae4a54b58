//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package errors

import "os"

// isTerminal 没有 termios 的平台上退回到字符设备检查
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
