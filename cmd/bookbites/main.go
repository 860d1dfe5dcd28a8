// Command bookbites is a terminal client for BookBites: sign in, then
// bookmark books and like reviews against the server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

var buildVersion = "dev" // set by ldflags

func main() {
	app := newApp(NewRunner(RunnerOpts{}))

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "not signed in: run `bookbites login` first")
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "bookbites: %v\n", err)
		os.Exit(1)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "bookbites",
		Usage:    "Bookmark books and like reviews on BookBites",
		Version:  buildVersion,
		Flags:    globalFlags(),
		Before:   r.Setup,
		After:    r.Teardown,
		Commands: r.register(),
	}
}
