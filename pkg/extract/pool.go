package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/stockrecon/pkg/constants"
	"github.com/agentstation/stockrecon/pkg/documents"
	"github.com/agentstation/stockrecon/pkg/errors"
	"github.com/agentstation/stockrecon/pkg/logging"
	"github.com/agentstation/stockrecon/pkg/store"
)

// TextFiles returns the .txt files of dir in ascending order. A missing
// folder yields no files.
func TextFiles(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, errors.WrapIO("list", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// ExpandPaths expands shell patterns into a sorted, de-duplicated file list.
// Patterns that match nothing are dropped with a warning.
func ExpandPaths(ctx context.Context, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.NewValidationError("path", pattern, err.Error())
		}
		if len(matches) == 0 {
			logging.FromContext(ctx).Warn().Str("pattern", pattern).Msg("No files match, skipping")
			continue
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}

// decoded is the pool's output for one text file.
type decoded struct {
	path string
	doc  documents.IssueDocument
}

// DecodeFiles decodes text files concurrently with at most workers files in
// flight, saves each document as JSON into outDir and returns the sorted
// verifications. Saving happens afterwards, one file at a time in path
// order, so when several files decode to the same identifier the last path
// wins. An unreadable file decodes as empty text and shows up in its
// verification; only a failed save stops the run.
func DecodeFiles(ctx context.Context, paths []string, outDir string, workers int) ([]Verification, error) {
	if workers <= 0 || workers > constants.MaxConcurrentDecoders {
		workers = constants.MaxConcurrentDecoders
	}

	results := make([]decoded, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			fileCtx := logging.WithFile(gCtx, path)

			text, err := readText(path)
			if err != nil {
				logging.FromContext(fileCtx).Warn().Err(err).Msg("File contains no usable data")
			}
			results[i] = decoded{path: path, doc: DecodeIssue(text).Normalize()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, canceled(ctx, err)
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].path < results[j].path })

	vs := make([]Verification, 0, len(results))
	for _, r := range results {
		if err := ctx.Err(); err != nil {
			return nil, canceled(ctx, err)
		}
		out, err := store.SaveIssue(outDir, r.doc)
		if err != nil {
			return nil, err
		}

		v := Verify(r.doc, r.path)
		v.Output = out
		vs = append(vs, v)
		logging.FromContext(logging.WithDocument(logging.WithFile(ctx, r.path), r.doc.ID)).Debug().
			Int("items", v.ItemCount).
			Str("output", out).
			Msg("Decoded issue document")
	}

	SortVerifications(vs)
	return vs, nil
}

func canceled(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", errors.ErrCanceled, err)
	}
	return err
}

func readText(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}
	if info.Size() > constants.MaxRecordSize {
		return "", errors.WrapIO("read", path, fmt.Errorf("file exceeds %d bytes", constants.MaxRecordSize))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}
	return string(data), nil
}
