package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// Finisher restores a terminal it took over, tcell.Screen satisfies it
type Finisher interface {
	Fini()
}

var (
	crashMu     sync.Mutex
	crashScreen Finisher
	crashOnce   sync.Once

	// Overridable in tests
	crashOut  io.Writer = os.Stderr
	crashExit           = os.Exit
)

// SetCrashScreen registers the screen restored before a crash report, nil clears it
func SetCrashScreen(f Finisher) {
	crashMu.Lock()
	crashScreen = f
	crashMu.Unlock()
}

// HandleCrash restores the terminal, prints the panic value with its stack and exits
// Only the first crash is reported; concurrent panics in other goroutines wait for exit
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashOnce.Do(func() {
		crashMu.Lock()
		screen := crashScreen
		crashMu.Unlock()

		if screen != nil {
			screen.Fini()
		}

		fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())

		crashExit(1)
	})
}

// Go runs fn in a new goroutine with panic recovery
// Use instead of the go keyword for anything running while the screen is owned
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
