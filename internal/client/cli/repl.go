package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Events(ctx context.Context) error
	Event(ctx context.Context, id string) error
	RegisterEvent(ctx context.Context, id string) error
	MyRegistrations(ctx context.Context) error
	Notifications(ctx context.Context) error
	Read(ctx context.Context, id string) error
	ReadAll(ctx context.Context) error
	Profile(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Health(ctx context.Context) error
}

const (
	helpLoggedIn  = "Available commands: events, event <id>, register-event <id>, my-registrations, notifications, read <id>, read-all, whoami, profile, dashboard, health, logout, exit"
	helpAnonymous = "Available commands: login, register, events, event <id>, health, exit"
)

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ce> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "e", "events":
			_ = a.Events(ctx)

		case "event":
			if len(args) == 0 {
				printlnFn("Usage: event <id>")
				continue
			}
			_ = a.Event(ctx, args[0])

		case "register-event":
			if len(args) == 0 {
				printlnFn("Usage: register-event <id>")
				continue
			}
			_ = a.RegisterEvent(ctx, args[0])

		case "my-registrations":
			_ = a.MyRegistrations(ctx)

		case "n", "notifications":
			_ = a.Notifications(ctx)

		case "read":
			if len(args) == 0 {
				printlnFn("Usage: read <id>")
				continue
			}
			_ = a.Read(ctx, args[0])

		case "read-all":
			_ = a.ReadAll(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "health":
			_ = a.Health(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if u := a.session.State().User; u != nil {
		s = u.Email + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", strings.TrimSpace(s))
	}
	return s
}

// Root runs the interactive loop on stdin until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to Campus Events CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
