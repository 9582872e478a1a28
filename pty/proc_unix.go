package pty

import "syscall"

// ptyProcAttr makes the child a session leader and gives it the pty
// slave (its stdin, fd 0) as controlling terminal.
func ptyProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true, Setctty: true}
}
