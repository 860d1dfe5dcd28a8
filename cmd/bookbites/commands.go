package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/Innovatorone/InnoBOOKweb/internal/collection"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
	"github.com/Innovatorone/InnoBOOKweb/internal/session"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "bookbites.toml",
			Sources: cli.EnvVars("BOOKBITES_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "address",
			Usage:   "Server address, overrides the config file",
			Sources: cli.EnvVars("BOOKBITES_ADDRESS"),
		},
		&cli.IntFlag{
			Name:  "log-level",
			Usage: "slog level: -4 debug, 0 info, 4 warn, 8 error",
			Value: 4,
		},
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		loginCommand, signupCommand, logoutCommand, whoamiCommand, bookmarksCommand, likesCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in with phone and password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "phone", Usage: "Phone number, e.g. +998901234567", Required: true},
			&cli.StringFlag{Name: "password", Usage: "Password", Required: true, Sources: cli.EnvVars("BOOKBITES_PASSWORD")},
		},
		Action: r.Login,
	}
}

func signupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "Create an account and sign in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "phone", Usage: "Phone number, e.g. +998901234567", Required: true},
			&cli.StringFlag{Name: "password", Usage: "Password", Required: true, Sources: cli.EnvVars("BOOKBITES_PASSWORD")},
			&cli.StringFlag{Name: "name", Usage: "Display name", Required: true},
			&cli.StringFlag{Name: "avatar", Usage: "Avatar object key or URL"},
		},
		Action: r.SignUp,
	}
}

func logoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Forget the saved session",
		Action: r.Logout,
	}
}

func whoamiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "Show the signed-in reader",
		Action: r.WhoAmI,
	}
}

func bookmarksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "bookmarks",
		Aliases: []string{"bm"},
		Usage:   "Bookmarked books",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List bookmarked books",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
				},
				Action: r.ListBookmarks,
			},
			{
				Name:      "toggle",
				Usage:     "Bookmark a book, or remove the bookmark",
				ArgsUsage: "<book-id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.toggle(ctx, cmd, r.bookmarks, "Bookmarked", "Removed bookmark")
				},
			},
		},
	}
}

func likesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "likes",
		Usage: "Liked reviews",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List liked review ids",
				Action: r.ListLikes,
			},
			{
				Name:      "toggle",
				Usage:     "Like a review, or take the like back",
				ArgsUsage: "<review-id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.toggle(ctx, cmd, r.likes, "Liked", "Unliked")
				},
			},
		},
	}
}

// Login signs in and loads the reader's collections.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	user, err := r.sess.Login(ctx, r.client, cmd.String("phone"), cmd.String("password"))
	if err != nil {
		return err
	}
	r.sync(ctx)
	r.printf("Signed in as %s (%s)\n", user.Name, user.Phone)
	return nil
}

// SignUp registers and signs in.
func (r *Runner) SignUp(ctx context.Context, cmd *cli.Command) error {
	user, err := r.sess.SignUp(ctx, r.client, model.SignUpParams{
		Phone:    cmd.String("phone"),
		Password: cmd.String("password"),
		Name:     cmd.String("name"),
		Avatar:   cmd.String("avatar"),
	})
	if err != nil {
		return err
	}
	r.sync(ctx)
	r.printf("Welcome, %s\n", user.Name)
	return nil
}

// Logout clears the session and the local collections.
func (r *Runner) Logout(ctx context.Context, _ *cli.Command) error {
	if err := r.sess.Logout(); err != nil {
		return err
	}
	r.sync(ctx)
	r.printf("Signed out\n")
	return nil
}

// WhoAmI prints the signed-in reader.
func (r *Runner) WhoAmI(_ context.Context, _ *cli.Command) error {
	user := r.sess.User()
	if user.ID == uuid.Nil {
		r.printf("Not signed in\n")
		return nil
	}
	r.printf("%s (%s), plan: %s, id: %s\n", user.Name, user.Phone, user.Plan, user.ID)
	return nil
}

// ListBookmarks prints the bookmarked books with their details.
func (r *Runner) ListBookmarks(ctx context.Context, cmd *cli.Command) error {
	if err := r.signedIn(ctx); err != nil {
		return err
	}

	books, err := r.client.GetBooks(ctx, r.bookmarks.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to load bookmarked books: %w", err)
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(r.output)
		enc.SetIndent("", "  ")
		return enc.Encode(books)
	}

	if len(books) == 0 {
		r.printf("No bookmarks yet\n")
		return nil
	}
	w := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tRATING\tPREMIUM")
	for _, b := range books {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%t\n", b.ID, b.Title, b.Author, b.Rating, b.IsPremium)
	}
	return w.Flush()
}

// ListLikes prints the ids of liked reviews.
func (r *Runner) ListLikes(ctx context.Context, _ *cli.Command) error {
	if err := r.signedIn(ctx); err != nil {
		return err
	}

	likes := r.likes.Snapshot()
	if len(likes) == 0 {
		r.printf("No liked reviews yet\n")
		return nil
	}
	for _, id := range likes {
		r.printf("%s\n", id)
	}
	return nil
}

func (r *Runner) toggle(ctx context.Context, cmd *cli.Command, store *collection.Store[uuid.UUID], added, removed string) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("%w: expected exactly one id", model.ErrInvalidArgument)
	}
	id, err := uuid.Parse(cmd.Args().First())
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid id", model.ErrInvalidArgument, cmd.Args().First())
	}

	r.sync(ctx)
	present, err := session.Toggle(ctx, r.gate, store, id)
	if err != nil {
		return err
	}

	if present {
		r.printf("%s %s\n", added, id)
	} else {
		r.printf("%s %s\n", removed, id)
	}
	return nil
}
