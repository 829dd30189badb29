//go:build !unix

package layout

import "os"

// No window-change signal here; the width is measured once on mount.
func notifyResize(chan<- os.Signal) {}

func stopResize(chan<- os.Signal) {}
