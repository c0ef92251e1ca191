package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// Finalizer restores the terminal, satisfied by tcell.Screen
type Finalizer interface {
	Fini()
}

var (
	crashMu     sync.Mutex
	crashScreen Finalizer

	// Replaced in tests
	crashOutput io.Writer = os.Stderr
	exit                  = os.Exit
)

// SetCrashScreen registers the screen finalized before a crash report, nil clears it
func SetCrashScreen(s Finalizer) {
	crashMu.Lock()
	crashScreen = s
	crashMu.Unlock()
}

// HandleCrash restores the terminal, prints the stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	s := crashScreen
	crashScreen = nil
	crashMu.Unlock()

	// Terminal must be restored before anything reaches stderr
	if s != nil {
		s.Fini()
	}

	fmt.Fprintf(crashOutput, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(crashOutput, "Stack Trace:\n%s\n", debug.Stack())

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
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
