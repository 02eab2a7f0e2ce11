package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/sakif/content-analytics/internal/client"
	"github.com/sakif/content-analytics/internal/ingest"
)

// ErrNotLoggedIn is returned by commands that need a token when the config
// has none.
var ErrNotLoggedIn = errors.New("not logged in, run `linkctl login` first")

// Runner holds the dependencies shared by every command action.
type Runner struct {
	logger *slog.Logger
	output io.Writer
	now    func() time.Time
}

type RunnerOpts struct {
	Logger *slog.Logger
	Output io.Writer
}

func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Runner{logger: opts.Logger, output: opts.Output, now: time.Now}
}

// App builds the command tree.
func (r *Runner) App() *cli.Command {
	return &cli.Command{
		Name:    "linkctl",
		Usage:   "Track social media links in content-analytics",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   DefaultConfigPath(),
				Sources: cli.EnvVars("LINKCTL_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "server",
				Usage:   "API base URL (overrides the config file)",
				Sources: cli.EnvVars("LINKCTL_SERVER"),
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print JSON instead of tables",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in and store the token in the config file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Required: true,
						Sources:  cli.EnvVars("LINKCTL_PASSWORD"),
					},
				},
				Action: r.Login,
			},
			{
				Name:      "classify",
				Usage:     "Show how a link would be classified, without saving anything",
				Arguments: []cli.Argument{&cli.StringArg{Name: "url"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "remote", Usage: "Ask the server instead of classifying locally"},
				},
				Action: r.Classify,
			},
			{
				Name:      "ingest",
				Usage:     "Add a link as tracked content, creating its platform if needed",
				Arguments: []cli.Argument{&cli.StringArg{Name: "url"}},
				Action:    r.Ingest,
			},
			{
				Name:  "platforms",
				Usage: "List connected platforms",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "stats", Usage: "Show content counts per platform"},
				},
				Action: r.Platforms,
			},
			{
				Name:  "contents",
				Usage: "List tracked content, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20},
					&cli.IntFlag{Name: "offset"},
				},
				Action: r.Contents,
			},
		},
	}
}

// session loads the config and applies the --server override.
func (r *Runner) session(cmd *cli.Command) (*Config, string, error) {
	path := cmd.String("config")
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, "", err
	}
	if s := cmd.String("server"); s != "" {
		cfg.Server = s
	}
	return cfg, path, nil
}

// authedClient returns a client carrying the stored token.
func (r *Runner) authedClient(cmd *cli.Command) (*client.Client, error) {
	cfg, _, err := r.session(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Token == "" {
		return nil, ErrNotLoggedIn
	}
	return client.New(cfg.Server, client.Credential(cfg.Token), r.logger)
}

// Login stores a fresh token for --username.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	cfg, path, err := r.session(cmd)
	if err != nil {
		return err
	}
	anon, err := client.New(cfg.Server, "", r.logger)
	if err != nil {
		return err
	}

	res, err := anon.Login(ctx, cmd.String("username"), cmd.String("password"))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cfg.Username = res.User.Username
	cfg.Token = string(res.Token)
	if err := SaveConfig(path, cfg); err != nil {
		return err
	}
	r.logger.Debug("token saved", "path", path)
	return r.writePlain("Logged in as %s\n", res.User.Username)
}

// Classify previews a link. Locally it needs no server or login.
func (r *Runner) Classify(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.StringArg("url")
	if raw == "" {
		return errors.New("classify: url argument is required")
	}

	var (
		c     ingest.Classification
		title string
	)
	if cmd.Bool("remote") {
		api, err := r.authedClient(cmd)
		if err != nil {
			return err
		}
		res, err := api.Classify(ctx, raw)
		if err != nil {
			return err
		}
		c, title = res.Classification, res.Title
	} else {
		c = ingest.Classify(raw)
		title = ingest.SynthesizeTitle(c.PlatformName, c.ContentType, r.now())
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"platformName": c.PlatformName,
			"contentId":    c.ContentID,
			"contentType":  c.ContentType,
			"title":        title,
			"valid":        c.ContentID != "",
		})
	}

	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Platform:\t%s\n", c.PlatformName)
	fmt.Fprintf(tw, "Type:\t%s\n", c.ContentType)
	fmt.Fprintf(tw, "Content ID:\t%s\n", orDash(c.ContentID))
	fmt.Fprintf(tw, "Title:\t%s\n", title)
	if err := tw.Flush(); err != nil {
		return err
	}
	if c.ContentID == "" {
		return r.writePlain("This link cannot be ingested: no content id found.\n")
	}
	return nil
}

// Ingest runs the pipeline locally with the server as its platform
// directory and content catalog.
func (r *Runner) Ingest(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.StringArg("url")
	if raw == "" {
		return errors.New("ingest: url argument is required")
	}
	api, err := r.authedClient(cmd)
	if err != nil {
		return err
	}
	me, err := api.Me(ctx)
	if err != nil {
		return err
	}

	orch := ingest.New(api, api, r.logger, ingest.WithClock(r.now))
	res, err := orch.Ingest(ctx, ingest.Submission{OwnerID: me.ID, URL: raw})
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return fmt.Errorf("%w (token expired? run `linkctl login`)", err)
		}
		return fmt.Errorf("%s: %w", ingest.FailureOf(err), err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(res)
	}
	verb := "existing"
	if res.PlatformCreated {
		verb = "new"
	}
	return r.writePlain("Added %q (content %d) under %s platform %s #%d\n",
		res.Title, res.Content.ID, verb, res.Classification.PlatformName, res.PlatformID)
}

// Platforms lists the user's platforms, or their content counts with --stats.
func (r *Runner) Platforms(ctx context.Context, cmd *cli.Command) error {
	api, err := r.authedClient(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("stats") {
		stats, err := api.PlatformStats(ctx)
		if err != nil {
			return err
		}
		if cmd.Bool("json") {
			return r.writeJSON(stats)
		}
		tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PLATFORM\tCONTENT")
		for name, s := range stats {
			fmt.Fprintf(tw, "%s\t%d\n", name, s.ContentCount)
		}
		return tw.Flush()
	}

	platforms, err := api.ListPlatforms(ctx, "")
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(platforms)
	}
	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPLATFORM\tUSERNAME\tCREATED")
	for _, p := range platforms {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.PlatformName, orDash(p.PlatformUsername), p.CreatedAt.Format(time.DateOnly))
	}
	return tw.Flush()
}

// Contents pages through tracked content.
func (r *Runner) Contents(ctx context.Context, cmd *cli.Command) error {
	api, err := r.authedClient(cmd)
	if err != nil {
		return err
	}
	contents, err := api.ListContents(ctx, int(cmd.Int("limit")), int(cmd.Int("offset")))
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(contents)
	}
	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPLATFORM\tTYPE\tTITLE\tURL")
	for _, c := range contents {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", c.ID, c.PlatformID, c.ContentType, c.Title, c.URL)
	}
	return tw.Flush()
}

func (r *Runner) writeJSON(data any) error {
	enc := json.NewEncoder(r.output)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.output, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
