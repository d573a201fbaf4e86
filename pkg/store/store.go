// Package store loads issue and dispatch document records from files into an
// in-memory Snapshot and persists extracted records back to files.
//
// Record problems are never fatal: a missing, oversized, unparsable or
// malformed file is logged, listed in Snapshot.Skipped and left out. Only a
// record folder that cannot be listed fails the load.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/stockrecon/pkg/constants"
	"github.com/agentstation/stockrecon/pkg/documents"
	"github.com/agentstation/stockrecon/pkg/errors"
	"github.com/agentstation/stockrecon/pkg/logging"
)

// recordExtensions lists the file extensions picked up from record folders.
var recordExtensions = []string{".json", ".yaml", ".yml"}

// LoadDir lists the record files of both folders and loads them.
// A folder that does not exist or cannot be read is a structural failure.
func LoadDir(ctx context.Context, issueDir, dispatchDir string) (*Snapshot, error) {
	issuePaths, err := ListRecords(issueDir)
	if err != nil {
		return nil, errors.WrapResource("load", "snapshot", "", err)
	}
	dispatchPaths, err := ListRecords(dispatchDir)
	if err != nil {
		return nil, errors.WrapResource("load", "snapshot", "", err)
	}
	return Load(ctx, issuePaths, dispatchPaths)
}

// ListRecords returns the record files of dir in ascending path order.
func ListRecords(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapIO("list", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isRecordFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads the given record files. Files that cannot be read or decoded
// are skipped; the only errors returned come from context cancellation.
// Log entries about a record carry its file and, once known, its document id.
func Load(ctx context.Context, issuePaths, dispatchPaths []string) (*Snapshot, error) {
	snap := newSnapshot()

	for _, path := range issuePaths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
		}
		fileCtx := logging.WithFile(ctx, path)
		var doc documents.IssueDocument
		if err := readRecord(path, &doc); err != nil {
			snap.skip(fileCtx, path, KindIssue, err)
			continue
		}
		doc = doc.Normalize()
		if err := doc.CheckItems(); err != nil {
			snap.skip(fileCtx, path, KindIssue, err)
			continue
		}
		docCtx := logging.WithDocument(fileCtx, doc.ID)
		warnInvalid(docCtx, doc.Validate())
		if _, dup := snap.Issues[doc.ID]; dup {
			logging.FromContext(docCtx).Warn().Msg("Duplicate issue document, later file wins")
		}
		snap.Issues[doc.ID] = doc
	}

	for _, path := range dispatchPaths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
		}
		fileCtx := logging.WithFile(ctx, path)
		var doc documents.DispatchDocument
		if err := readRecord(path, &doc); err != nil {
			snap.skip(fileCtx, path, KindDispatch, err)
			continue
		}
		doc = doc.Normalize()
		if err := doc.CheckItems(); err != nil {
			snap.skip(fileCtx, path, KindDispatch, err)
			continue
		}
		docCtx := logging.WithDocument(fileCtx, doc.ID)
		warnInvalid(docCtx, doc.Validate())
		if _, dup := snap.Dispatches[doc.ID]; dup {
			logging.FromContext(docCtx).Warn().Msg("Duplicate dispatch document, later file wins")
		}
		snap.Dispatches[doc.ID] = doc
	}

	logging.FromContext(ctx).Debug().
		Int("issues", len(snap.Issues)).
		Int("dispatches", len(snap.Dispatches)).
		Int("skipped", len(snap.Skipped)).
		Msg("Records loaded")

	return snap, nil
}

// readRecord decodes one record file into v, choosing the decoder by extension.
func readRecord(path string, v any) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}
	if info.Size() > constants.MaxRecordSize {
		return errors.NewValidationError("size", info.Size(), fmt.Sprintf("record larger than %d bytes", constants.MaxRecordSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return errors.WrapParse("yaml", path, err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return errors.WrapParse("json", path, err)
		}
	}
	return nil
}

// skip records a dropped file. ctx already carries the file.
func (s *Snapshot) skip(ctx context.Context, path string, kind Kind, err error) {
	logging.FromContext(ctx).Warn().
		Err(err).
		Str("kind", string(kind)).
		Msg("Skipping unreadable record")
	s.Skipped = append(s.Skipped, SkippedRecord{Path: path, Kind: kind, Reason: err.Error()})
}

func warnInvalid(ctx context.Context, errs []error) {
	for _, err := range errs {
		logging.FromContext(ctx).Warn().Err(err).Msg("Malformed identifier")
	}
}

func isRecordFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range recordExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
