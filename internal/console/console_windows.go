//go:build windows

package console

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

const cpUTF8 = 65001

func platformSetup(f *os.File) setup {
	h := windows.Handle(f.Fd())
	return setup{
		enableVT: func() error { return enableVirtualTerminal(h) },
		useUTF8:  useUTF8,
	}
}

func enableVirtualTerminal(h windows.Handle) error {
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return fmt.Errorf("get console mode: %w", err)
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return nil
	}
	if err := windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		return fmt.Errorf("set console mode: %w", err)
	}
	return nil
}

func useUTF8() error {
	if err := windows.SetConsoleOutputCP(cpUTF8); err != nil {
		return fmt.Errorf("set console output code page: %w", err)
	}
	if err := windows.SetConsoleCP(cpUTF8); err != nil {
		return fmt.Errorf("set console input code page: %w", err)
	}
	return nil
}
