package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Generate(ctx context.Context) error
	Gallery(ctx context.Context) error
	History(ctx context.Context) error
	Download(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	Avatar(ctx context.Context) error
	Delete(ctx context.Context) error
}

// runREPL reads a line, treats the first token as the command and
// dispatches it to a. The loop ends on EOF, "exit" or "quit". Handler
// errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tk %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: generate, gallery, history, download [n], profile, avatar, delete, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "generate", "g":
			cmdErr = a.Generate(ctx)
		case "gallery":
			cmdErr = a.Gallery(ctx)
		case "history", "h":
			cmdErr = a.History(ctx)
		case "download":
			cmdErr = a.Download(ctx, args)
		case "profile":
			cmdErr = a.Profile(ctx)
		case "avatar":
			cmdErr = a.Avatar(ctx)
		case "delete":
			cmdErr = a.Delete(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr.Error())
		}
		if err != nil {
			return
		}
	}
}
