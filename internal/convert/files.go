package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/florianilch/agency/types"
)

// FileOptions controls batch conversion.
type FileOptions struct {
	// OutDir receives one <name>.<target>.json per input.
	OutDir      string
	Indent      bool
	Concurrency int
}

// ConvertFiles converts every path concurrently and writes the results to
// opts.OutDir. The first failure cancels the remaining conversions.
func (s *Service) ConvertFiles(ctx context.Context, from types.Provider, paths []string, opts FileOptions) error {
	if opts.OutDir == "" {
		return fmt.Errorf("output directory required for batch conversion")
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for _, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			out, err := s.convertBytes(gCtx, from, data, path, opts.Indent)
			if err != nil {
				return fmt.Errorf("convert %s: %w", path, err)
			}

			target := filepath.Join(opts.OutDir, OutputName(path, Target(from)))
			if err := os.WriteFile(target, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// ConvertStream converts a single document from r to w. name selects the input
// format the same way DecodeDocument does.
func (s *Service) ConvertStream(ctx context.Context, from types.Provider, r io.Reader, w io.Writer, name string, indent bool) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	out, err := s.convertBytes(ctx, from, data, name, indent)
	if err != nil {
		return err
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (s *Service) convertBytes(ctx context.Context, from types.Provider, data []byte, name string, indent bool) ([]byte, error) {
	doc, err := DecodeDocument(data, name)
	if err != nil {
		return nil, err
	}

	out, err := s.Convert(ctx, from, doc)
	if err != nil {
		return nil, err
	}

	return EncodeDocument(out, indent)
}

// OutputName derives the output file name: chat.yaml converted to anthropic
// becomes chat.anthropic.json.
func OutputName(path string, target types.Provider) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s.%s.json", base, target)
}
