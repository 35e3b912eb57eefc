// Package batch converts whole directory trees between ADF JSON and Markdown.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/gubarz/adfmd/internal/converter"
	"github.com/gubarz/adfmd/internal/logger"
)

// ErrUnsupportedDirection is returned for an unknown conversion direction.
var ErrUnsupportedDirection = errors.New("batch: unsupported direction")

// ============================================================================
// Direction
// ============================================================================

// Direction selects which way files are converted.
type Direction int

const (
	// ToADF converts .md files into .json documents.
	ToADF Direction = iota + 1
	// ToMarkdown converts .json documents into .md files.
	ToMarkdown
)

// ParseDirection maps "adf"/"json" and "md"/"markdown" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "adf", "json":
		return ToADF, nil
	case "md", "markdown":
		return ToMarkdown, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedDirection, s)
}

func (d Direction) String() string {
	switch d {
	case ToADF:
		return "adf"
	case ToMarkdown:
		return "md"
	}
	return "unknown"
}

// SourceExt is the extension of files read in this direction.
func (d Direction) SourceExt() string {
	if d == ToADF {
		return ".md"
	}
	return ".json"
}

// TargetExt is the extension of files written in this direction.
func (d Direction) TargetExt() string {
	if d == ToADF {
		return ".json"
	}
	return ".md"
}

// Matches reports whether path is a source file for d.
func (d Direction) Matches(path string) bool {
	return strings.EqualFold(filepath.Ext(path), d.SourceExt())
}

// ============================================================================
// Converter
// ============================================================================

// Result describes one converted file.
type Result struct {
	Source string
	Target string
	Err    error
}

// Converter runs conversions over a file system.
type Converter struct {
	Fs      afero.Fs
	Conv    *converter.Converter
	Workers int
	// Indent for JSON output; empty writes compact JSON.
	Indent string
}

// Run converts every source file under src into the mirrored path under dst.
// Per-file failures are reported in Result.Err; the returned error is only
// set when the walk fails or ctx is cancelled.
func (c *Converter) Run(ctx context.Context, src, dst string, dir Direction) ([]Result, error) {
	if dir != ToADF && dir != ToMarkdown {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDirection, dir)
	}

	var files []string
	err := afero.Walk(c.Fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && dir.Matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", src, err)
	}

	logger.Section("Batch")
	logger.Info("converting %d files from %s to %s (%s)", len(files), src, dst, dir)

	p := pool.NewWithResults[Result]().
		WithContext(ctx).
		WithMaxGoroutines(c.workers())

	for _, path := range files {
		p.Go(func(ctx context.Context) (Result, error) {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			target, err := TargetPath(src, dst, path, dir)
			if err != nil {
				return Result{Source: path, Err: err}, nil
			}
			return c.ConvertFile(path, target, dir), nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Source < results[j].Source })
	return results, nil
}

func (c *Converter) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return 1
}

// TargetPath mirrors path, which lives under src, into dst with the target
// extension for dir.
func TargetPath(src, dst, path string, dir Direction) (string, error) {
	rel, err := filepath.Rel(src, path)
	if err != nil {
		return "", fmt.Errorf("relative path for %s: %w", path, err)
	}
	if rel == "." {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + dir.TargetExt()
	return filepath.Join(dst, rel), nil
}

// ConvertFile converts a single file and writes the result to dst.
func (c *Converter) ConvertFile(src, dst string, dir Direction) Result {
	res := Result{Source: src, Target: dst}

	data, err := afero.ReadFile(c.Fs, src)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", src, err)
		return res
	}

	var out []byte
	switch dir {
	case ToADF:
		out, err = c.toADF(string(data))
	case ToMarkdown:
		var md string
		md, err = c.Conv.ToMarkdownJSON(data, nil)
		out = []byte(md + "\n")
	default:
		err = fmt.Errorf("%w: %d", ErrUnsupportedDirection, dir)
	}
	if err != nil {
		res.Err = fmt.Errorf("convert %s: %w", src, err)
		logger.WithFields(map[string]any{"file": src}).Warn(err)
		return res
	}

	if err := c.Fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		res.Err = fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
		return res
	}
	if err := afero.WriteFile(c.Fs, dst, out, 0o644); err != nil {
		res.Err = fmt.Errorf("write %s: %w", dst, err)
		return res
	}

	logger.Debug("converted %s -> %s", src, dst)
	return res
}

// toADF writes a bare document, or an Envelope when front-matter is present.
func (c *Converter) toADF(markdown string) ([]byte, error) {
	doc, meta, err := c.Conv.ToADF(markdown)
	if err != nil {
		return nil, err
	}

	var v any = doc
	if meta != nil {
		v = converter.Envelope{Body: doc, Metadata: meta}
	}
	data, err := converter.EncodeJSON(v, c.Indent)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
