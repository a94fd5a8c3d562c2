package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/voicenotes/internal/client/api"
)

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a recording stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, view api.View, query string) error
	Record(ctx context.Context, audioPath, scriptPath string) error
	Edit(ctx context.Context, id string) error
	ToggleFavourite(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: signup, login, exit"
	helpLoggedIn  = "Available commands: list, favs, search <query>, record <audio-file> [transcript-file], " +
		"edit <id>, fav <id>, delete <id>, export, logout, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
// It returns on EOF, "exit"/"quit" or when ctx is done. Command errors are
// reported to w and do not end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for ctx.Err() == nil {
		fmt.Fprintf(w, "vn %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(w, "Bye!")
			return
		}
		report(w, dispatch(ctx, a, w, cmd, args))
	}
}

var errUsage = errors.New("usage")

func dispatch(ctx context.Context, a execIface, w io.Writer, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(w, helpLoggedIn)
		} else {
			fmt.Fprintln(w, helpLoggedOut)
		}
		return nil
	case "signup", "register":
		return a.Signup(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !needsLogin(cmd) {
		fmt.Fprintln(w, "Unknown command:", cmd)
		return nil
	}
	if !a.isLoggedIn() {
		fmt.Fprintln(w, "Please login first")
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "l", "list":
		return a.List(ctx, api.AllView, "")
	case "favs", "favourites":
		return a.List(ctx, api.FavouritesView, "")
	case "search":
		if len(args) == 0 {
			return fmt.Errorf("%w: search <query>", errUsage)
		}
		return a.List(ctx, api.SearchView, strings.Join(args, " "))
	case "record":
		switch len(args) {
		case 1:
			return a.Record(ctx, args[0], "")
		case 2:
			return a.Record(ctx, args[0], args[1])
		default:
			return fmt.Errorf("%w: record <audio-file> [transcript-file]", errUsage)
		}
	case "edit", "fav", "delete":
		if len(args) != 1 {
			return fmt.Errorf("%w: %s <id>", errUsage, cmd)
		}
		switch cmd {
		case "edit":
			return a.Edit(ctx, args[0])
		case "fav":
			return a.ToggleFavourite(ctx, args[0])
		default:
			return a.Delete(ctx, args[0])
		}
	case "export":
		return a.Export(ctx)
	}
	return nil
}

func needsLogin(cmd string) bool {
	switch cmd {
	case "logout", "l", "list", "favs", "favourites", "search", "record", "edit", "fav", "delete", "export":
		return true
	}
	return false
}

func report(w io.Writer, err error) {
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		fmt.Fprintln(w, "Usage:", strings.TrimPrefix(err.Error(), "usage: "))
	case errors.Is(err, api.ErrUnauthorized):
		fmt.Fprintln(w, "Session expired, please login again")
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(w, "Server unavailable, try again later")
	default:
		fmt.Fprintln(w, "Error:", err)
	}
}
