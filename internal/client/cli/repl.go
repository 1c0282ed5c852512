package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Caption(ctx context.Context) error
	Video(ctx context.Context) error
	History(ctx context.Context) error
	Feedback(ctx context.Context) error
	Stats(ctx context.Context) error
	Users(ctx context.Context) error
	Captions(ctx context.Context) error
	ManageFeedback(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Visual Caption CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - signup         — create an account (email OTP verification)
//	  - signin         — authenticate
//	  - caption        — caption an image (result is not saved)
//	  - video          — preview a video link
//	  - feedback       — leave feedback (requires sign-in, remembered)
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - caption        — caption an image and save it to history
//	  - video          — preview a video link
//	  - history        — list past uploads
//	  - feedback       — leave feedback
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
//	Admin additionally:
//	  - stats          — usage totals
//	  - users          — manage user accounts
//	  - captions       — manage generated captions
//	  - feedbacks      — review and answer feedback
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("vcap %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				printlnFn("Available commands: stats, users, captions, feedbacks, logout, exit")
			case a.isLoggedIn():
				printlnFn("Available commands: caption, video, history, feedback, logout, exit")
			default:
				printlnFn("Available commands: signup, signin, caption, video, feedback, exit")
			}

		case "signup", "register":
			_ = a.Register(ctx)

		case "signin", "login":
			_ = a.Login(ctx)

		case "caption":
			_ = a.Caption(ctx)

		case "video":
			_ = a.Video(ctx)

		case "history":
			_ = a.History(ctx)

		case "feedback":
			_ = a.Feedback(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "users":
			_ = a.Users(ctx)

		case "captions":
			_ = a.Captions(ctx)

		case "feedbacks":
			_ = a.ManageFeedback(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
