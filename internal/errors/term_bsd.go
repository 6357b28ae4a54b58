//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package errors

import (
	"os"

	"golang.org/x/sys/unix"
)

// isTerminal 通过 TIOCGETA 判断文件描述符是否为终端
func isTerminal(f *os.File) bool {
	_, err := unix.IoctlGetTermios(int(f.Fd()), unix.TIOCGETA)
	return err == nil
}
