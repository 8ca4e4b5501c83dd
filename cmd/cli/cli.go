package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/pep299/video-summarizer/internal/infrastructure"
	"github.com/pep299/video-summarizer/internal/model"
	"github.com/pep299/video-summarizer/internal/service"
)

type (
	configLoader func() (*infrastructure.Config, error)
	runFactory   func(cfg *infrastructure.Config) *service.Run
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(out io.Writer, loadConfig configLoader, newRun runFactory) *cli.App {
	app := &cli.App{
		Name:    "video-summarizer",
		Usage:   "Summarize YouTube videos from their transcripts",
		Version: fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime),
		Writer:  out,
		Commands: []*cli.Command{
			summarizeCmd(out, loadConfig, newRun),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// summarizeCmd creates the summarize command.
func summarizeCmd(out io.Writer, loadConfig configLoader, newRun runFactory) *cli.Command {
	return &cli.Command{
		Name:      "summarize",
		Usage:     "Summarize the video at URL",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "length", Aliases: []string{"l"}, Value: string(model.LengthShort), Usage: "Summary length: Short|Medium|Long"},
			&cli.StringFlag{Name: "style", Aliases: []string{"s"}, Value: string(model.StyleBulletPoints), Usage: "Answer type: \"Bullet Points\"|Paragraph"},
			&cli.StringFlag{Name: "out-dir", Aliases: []string{"o"}, Usage: "Write <title>_summary.txt and <title>_transcript.txt into this directory"},
			&cli.BoolFlag{Name: "timestamps", Usage: "Prefix transcript lines with their start time in --out-dir output"},
			&cli.BoolFlag{Name: "raw", Usage: "Print plain Markdown instead of rendering it"},
		},
		Action: func(c *cli.Context) error {
			opts, err := model.ParseOptions(c.String("length"), c.String("style"))
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			result, err := newRun(cfg).Execute(contextOf(c), service.NewHistory(), c.Args().First(), opts)
			if err != nil {
				return err
			}

			report := formatReport(result)
			if !c.Bool("raw") {
				if report, err = renderMarkdown(report); err != nil {
					return err
				}
			}
			fmt.Fprint(out, report)

			if dir := c.String("out-dir"); dir != "" {
				paths, err := writeArtifacts(dir, result, c.Bool("timestamps"))
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintf(out, "Saved %s\n", p)
				}
			}
			return nil
		},
	}
}

func contextOf(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}

// formatReport lays out the summary and video details as Markdown
func formatReport(result *model.Result) string {
	var b strings.Builder
	b.WriteString("### Content Summary\n\n")
	b.WriteString(result.Entry.Summary)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "**Title:** %s  \n", result.Info.Title)
	fmt.Fprintf(&b, "**Author:** %s  \n", result.Info.Author)
	fmt.Fprintf(&b, "**URL:** %s\n", result.Info.URL)
	return b.String()
}

// writeArtifacts saves the summary and transcript text files and returns their paths
func writeArtifacts(dir string, result *model.Result, timestamps bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	transcript := result.Entry.Transcript
	if timestamps && len(result.Captions) > 0 {
		transcript = formatCaptions(result.Captions)
	}

	base := fileSafe(result.Entry.Title)
	files := []struct {
		name string
		body string
	}{
		{base + "_summary.txt", result.Entry.Summary},
		{base + "_transcript.txt", transcript},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.body), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// formatCaptions renders one "[mm:ss] text" line per caption
func formatCaptions(captions []model.Caption) string {
	var b strings.Builder
	for _, c := range captions {
		fmt.Fprintf(&b, "[%s] %s\n", formatTimestamp(c.Start), c.Text)
	}
	return b.String()
}

func formatTimestamp(seconds float64) string {
	total := int(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// fileSafe replaces path separators so a title cannot escape the output directory
func fileSafe(title string) string {
	return strings.NewReplacer("/", "_", "\\", "_", "\x00", "").Replace(title)
}
