package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/iw2rmb/remindr"
	"github.com/iw2rmb/remindr/document"
	"github.com/iw2rmb/remindr/internal/config"
	"github.com/iw2rmb/remindr/internal/logging"
	"github.com/iw2rmb/remindr/session"
	"github.com/iw2rmb/remindr/store"
)

// env holds what every command needs.
type env struct {
	cfg  config.Config
	log  *zap.Logger
	repo *store.Repository
}

func openEnv(ctx context.Context, configPath string) (*env, error) {
	cfg, err := config.Load(config.Resolve(configPath))
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	if cfg.Database.Driver == string(store.DriverSQLite) {
		if dir := filepath.Dir(cfg.Database.DSN); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("database dir: %w", err)
			}
		}
	}
	repo, err := store.Open(ctx, store.Config{
		Driver: store.Driver(cfg.Database.Driver),
		DSN:    cfg.Database.DSN,
	}, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return &env{cfg: cfg, log: log, repo: repo}, nil
}

func (e *env) Close() {
	if err := e.repo.Close(); err != nil {
		e.log.Warn("close database", zap.Error(err))
	}
	_ = e.log.Sync()
}

func versionString() string {
	return remindr.ReadBuildInfo().String()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid document id %q", s)
	}
	return id, nil
}

func cmdList(configPath string, stdout io.Writer) error {
	ctx := context.Background()
	e, err := openEnv(ctx, configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	docs, err := e.repo.List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tUPDATED")
	for _, d := range docs {
		updated := "-"
		if !d.UpdatedAt.IsZero() {
			updated = d.UpdatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", d.ID, displayTitle(d.Title), updated)
	}
	return tw.Flush()
}

func cmdNew(configPath string, args []string, stdout io.Writer) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return errors.New("usage: remindr new <title>")
	}
	ctx := context.Background()
	e, err := openEnv(ctx, configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	doc, err := e.repo.Create(ctx, title)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, doc.ID)
	return nil
}

func cmdExport(configPath string, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	render := fs.Bool("render", false, "render Markdown for the terminal")
	width := fs.Int("width", 80, "wrap width when rendering")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: remindr export [--render] <id>")
	}
	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	ctx := context.Background()
	e, err := openEnv(ctx, configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	doc, err := e.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	md := document.Markdown(doc)
	if *render {
		out, err := renderMarkdown(md, *width)
		if err != nil {
			return err
		}
		md = out
	}
	_, err = io.WriteString(stdout, md)
	return err
}

// renderMarkdown styles md for a dark terminal. A fixed style avoids
// querying the terminal while Bubble Tea owns it.
func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

func cmdOpen(configPath string, args []string) error {
	var openID int64
	if len(args) > 0 {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		openID = id
	}

	ctx := context.Background()
	e, err := openEnv(ctx, configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	sess := session.New(session.Options{
		Saver:    e.repo,
		Debounce: e.cfg.Save.Debounce.Duration,
		Logger:   e.log,
	})
	ctx = logging.NewContext(ctx, e.log)

	m := newApp(ctx, e.cfg, e.repo, sess, openID)
	p := tea.NewProgram(m, tea.WithAltScreen())
	unsubscribe := sess.Subscribe(func() { p.Send(sessionChangedMsg{}) })
	defer unsubscribe()

	_, runErr := p.Run()
	if err := sess.Flush(ctx); err != nil {
		e.log.Error("flush on quit", zap.Error(err))
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}

func displayTitle(t string) string {
	if strings.TrimSpace(t) == "" {
		return "Untitled"
	}
	return t
}
