package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/florianilch/agency/internal/convert"
)

// convertCommand returns the 'convert' subcommand.
func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert conversation documents to the other schema",
		ArgsUsage: "[FILE...] (default or '-': stdin)",
		Description: "Reads JSON or YAML documents of the form {system, messages, tools} or a bare\n" +
			"message array. A single input is written to stdout; with --out, every input\n" +
			"is written to <out>/<name>.<target>.json.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Aliases:  []string{"f"},
				Usage:    "schema of the input (openai|anthropic)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output directory; required for more than one input",
			},
			&cli.StringFlag{
				Name:  "indent",
				Usage: "indent output (auto|always|never); auto indents files and terminals",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "number of files converted in parallel",
			},
		},
		Action: convertAction,
	}
}

func convertAction(ctx context.Context, cmd *cli.Command) error {
	cfg, flush, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer flush()

	from, err := convert.ParseProvider(cmd.String("from"))
	if err != nil {
		return err
	}

	svc := convert.NewService()
	paths := cmd.Args().Slice()
	outDir := cmd.String("out")

	readsStdin := len(paths) == 0 || slices.Contains(paths, "-")

	switch {
	case readsStdin && len(paths) > 1:
		return errors.New("stdin cannot be combined with other inputs")
	case readsStdin && outDir != "":
		return errors.New("--out cannot be combined with stdin")
	case outDir == "" && len(paths) > 1:
		return errors.New("--out is required when converting more than one file")
	}

	if outDir != "" {
		slog.DebugContext(ctx, "converting files", "count", len(paths), "out", outDir)
		return svc.ConvertFiles(ctx, from, paths, convert.FileOptions{
			OutDir:      outDir,
			Indent:      cfg.Convert.Indent != "never",
			Concurrency: cfg.Convert.Concurrency,
		})
	}

	w := cmd.Root().Writer
	indent := resolveIndent(cfg.Convert.Indent, w)

	if readsStdin {
		return svc.ConvertStream(ctx, from, cmd.Root().Reader, w, "-", indent)
	}

	f, err := os.Open(paths[0])
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return svc.ConvertStream(ctx, from, f, w, paths[0], indent)
}

// resolveIndent decides indentation for output written to w. auto indents only
// when w is a terminal.
func resolveIndent(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
