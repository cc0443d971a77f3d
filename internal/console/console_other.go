//go:build !windows

package console

import "os"

// Unix terminals interpret escape sequences and UTF-8 without setup.
func platformSetup(*os.File) setup {
	return setup{}
}
