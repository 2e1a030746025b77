package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// Screen modes are written raw; the rest comes from x/ansi.
const (
	enterAltScreen = "\x1b[?1049h"
	leaveAltScreen = "\x1b[?1049l"
)

// FatalExitCode is the process exit status used when the terminal cannot be restored.
const FatalExitCode = 2

// Guard enters and leaves the alternate screen buffer.
type Guard struct {
	out    *bufio.Writer
	mu     sync.Mutex
	active bool
	left   bool
	// fatal handles a failed restore on the cleanup path.
	fatal func(error)
}

// NewGuard creates a guard writing control sequences to w.
func NewGuard(w io.Writer) *Guard {
	return &Guard{
		out:   bufio.NewWriter(w),
		fatal: exitOnRestoreFailure,
	}
}

// OnFatal replaces the handler invoked when Close cannot restore the terminal.
func (g *Guard) OnFatal(fn func(error)) {
	g.mu.Lock()
	g.fatal = fn
	g.mu.Unlock()
}

// Active reports whether the alternate screen is in use.
func (g *Guard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// Enter switches to the alternate screen, hides the cursor and clears it.
func (g *Guard) Enter() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.out.WriteString(enterAltScreen)
	g.out.WriteString(ansi.HideCursor)
	g.out.WriteString(ansi.EraseEntireScreen)
	g.out.WriteString(ansi.CursorHomePosition)
	if err := g.out.Flush(); err != nil {
		return fmt.Errorf("enter alternate screen: %w", err)
	}

	g.active = true
	g.left = false
	return nil
}

// Leave returns to the normal screen and shows the cursor. Only the first
// call after construction or Enter writes anything.
func (g *Guard) Leave() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.left {
		return nil
	}
	g.left = true
	g.active = false

	g.out.WriteString(leaveAltScreen)
	g.out.WriteString(ansi.ShowCursor)
	if err := g.out.Flush(); err != nil {
		return fmt.Errorf("leave alternate screen: %w", err)
	}
	return nil
}

// Close is the cleanup path. It leaves the alternate screen if that has
// not happened yet; a failure is handed to the fatal handler.
func (g *Guard) Close() error {
	if err := g.Leave(); err != nil {
		g.mu.Lock()
		fatal := g.fatal
		g.mu.Unlock()
		fatal(err)
		return err
	}
	return nil
}

func exitOnRestoreFailure(err error) {
	fmt.Fprintf(os.Stderr, "fatal: terminal left in alternate screen: %v\n", err)
	os.Exit(FatalExitCode)
}
