// Package term owns the terminal session: alternate-screen entry and exit,
// cursor visibility and size queries.
//
// [Guard] follows a strict state machine:
//
//	Normal --Enter--> AlternateScreenActive --Leave--> Normal
//
// Leave runs at most once. Deferring [Guard.Close] right after creating
// the guard restores the terminal on every return path, including errors
// raised before Enter succeeded.
//
//	g := term.NewGuard(os.Stdout)
//	defer g.Close()
//	if err := g.Enter(); err != nil {
//	    return err
//	}
package term
