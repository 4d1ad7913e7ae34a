package sync

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/sessync/sessync/pkg/logging"
	"github.com/sessync/sessync/pkg/models"
	"github.com/sessync/sessync/pkg/output"
	"github.com/sessync/sessync/pkg/pathid"
	"github.com/sessync/sessync/pkg/storage"
)

// Engine walks flattened session subtrees and copies stale files into a
// repository sync directory. One Sync call owns its worklist and result
// exclusively; the engine issues storage operations strictly
// sequentially.
type Engine struct {
	backend  storage.Backend
	conv     *pathid.Converter
	logger   logging.Logger
	observer output.Observer
}

// NewEngine creates a sync engine. logger and observer may be nil.
func NewEngine(backend storage.Backend, conv *pathid.Converter, logger logging.Logger, observer output.Observer) *Engine {
	if conv == nil {
		conv = pathid.NewConverter(nil)
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		backend:  backend,
		conv:     conv,
		logger:   logger,
		observer: observer,
	}
}

// Sync copies stale files from every directory under sourceRoot whose
// name starts with prefix into targetRoot, rewriting the flattened
// leading segment back into a hierarchy.
//
// Listing failures skip the affected subtree; per-file copy failures
// are recorded in the result; structural failures (unrelatable paths,
// failed existence checks) abort the run.
func (e *Engine) Sync(ctx context.Context, sourceRoot, prefix, targetRoot string, opts models.Options) (*models.Result, error) {
	result := &models.Result{}

	// Tracks directories this run has (or in dry-run, would have)
	// created, so dry-run counters match a real run exactly.
	created := make(map[string]struct{})

	if err := e.ensureDir(ctx, targetRoot, opts, result, created); err != nil {
		return nil, fmt.Errorf("ensuring target root: %w", err)
	}

	// A listing failure is always recovered locally, the source root
	// included: there is simply nothing to sync.
	roots, err := e.backend.ListDirectory(ctx, sourceRoot)
	if err != nil {
		e.logger.Warn(ctx, "failed to list source root, nothing to sync",
			logging.Fields{"dir": sourceRoot, "error": err.Error()})
		return result, nil
	}

	var queue []string
	for _, entry := range roots {
		if entry.IsDir && strings.HasPrefix(filepath.Base(entry.Path), prefix) {
			queue = append(queue, entry.Path)
		}
	}

	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		entries, err := e.backend.ListDirectory(ctx, dir)
		if err != nil {
			e.logger.Warn(ctx, "failed to list directory, skipping subtree",
				logging.Fields{"dir": dir, "error": err.Error()})
			continue
		}

		for _, entry := range entries {
			targetPath, err := e.targetFor(sourceRoot, targetRoot, entry.Path)
			if err != nil {
				return nil, err
			}

			if entry.IsDir {
				if err := e.ensureDir(ctx, targetPath, opts, result, created); err != nil {
					return nil, err
				}
				queue = append(queue, entry.Path)
				continue
			}

			e.syncFile(ctx, entry.Path, targetPath, opts, result, created)
		}
	}

	return result, nil
}

// targetFor maps a source entry path to its target path: the path is
// made relative to sourceRoot, the flattened leading segment is
// rewritten through the domain-suffix-aware converter, and the rest is
// joined under targetRoot.
func (e *Engine) targetFor(sourceRoot, targetRoot, sourcePath string) (string, error) {
	rel, err := filepath.Rel(sourceRoot, sourcePath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &storage.PathError{Path: sourcePath, Message: "not relative to source root"}
	}

	slashed := filepath.ToSlash(rel)
	head, rest, split := strings.Cut(slashed, "/")
	converted := e.conv.ConvertSegment(head)
	if split {
		converted = path.Join(converted, rest)
	}

	return filepath.Join(targetRoot, filepath.FromSlash(converted)), nil
}

// syncFile applies the staleness rule to one file and performs the copy
// when needed. All failures here are soft: they are recorded in the
// result and the traversal moves on.
func (e *Engine) syncFile(ctx context.Context, sourcePath, targetPath string, opts models.Options, result *models.Result, created map[string]struct{}) {
	copyNeeded, err := e.shouldCopy(ctx, sourcePath, targetPath)
	if err != nil {
		result.AddError(fmt.Sprintf("checking file %s: %v", sourcePath, err))
		return
	}

	if !copyNeeded {
		result.FilesSkipped++
		if e.observer != nil {
			e.observer.FileSkipped(sourcePath)
		}
		if opts.Verbose {
			e.logger.Info(ctx, "skipped (up to date)", logging.Fields{"path": sourcePath})
		}
		return
	}

	if err := e.ensureDir(ctx, filepath.Dir(targetPath), opts, result, created); err != nil {
		result.AddError(fmt.Sprintf("preparing directory for %s: %v", sourcePath, err))
		return
	}

	if !opts.DryRun {
		if err := e.backend.CopyFile(ctx, sourcePath, targetPath); err != nil {
			result.AddError(fmt.Sprintf("copying %s: %v", sourcePath, err))
			return
		}

		// Stamp the copy with the sync time rather than the source's
		// own mtime; a failure here never fails the copy.
		if err := e.backend.SetModTime(ctx, targetPath, time.Now()); err != nil {
			e.logger.Warn(ctx, "failed to update timestamp",
				logging.Fields{"path": targetPath, "error": err.Error()})
		}
	}

	result.FilesCopied++
	if e.observer != nil {
		e.observer.FileCopied(sourcePath)
	}
	if opts.Verbose {
		e.logger.Info(ctx, "copied", logging.Fields{"from": sourcePath, "to": targetPath})
	}
}

// shouldCopy is the staleness rule: copy when the target is missing or
// strictly older than the source. Equal timestamps are up to date.
func (e *Engine) shouldCopy(ctx context.Context, sourcePath, targetPath string) (bool, error) {
	exists, err := e.backend.Exists(ctx, targetPath)
	if err != nil {
		return false, err
	}
	if !exists {
		return true, nil
	}

	sourceInfo, err := e.backend.Stat(ctx, sourcePath)
	if err != nil {
		return false, err
	}
	targetInfo, err := e.backend.Stat(ctx, targetPath)
	if err != nil {
		return false, err
	}

	return sourceInfo.ModTime.After(targetInfo.ModTime), nil
}

// ensureDir creates dir if this run has not already created it and it
// does not exist. The created-directory counter advances even in
// dry-run so previews report the same numbers as a real run.
func (e *Engine) ensureDir(ctx context.Context, dir string, opts models.Options, result *models.Result, created map[string]struct{}) error {
	if _, ok := created[dir]; ok {
		return nil
	}

	exists, err := e.backend.Exists(ctx, dir)
	if err != nil {
		return fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if exists {
		return nil
	}

	if !opts.DryRun {
		if err := e.backend.MkdirAll(ctx, dir); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	// MkdirAll creates intermediate segments too; mark them so a
	// dry-run does not count them again on a later visit.
	created[dir] = struct{}{}
	for p := filepath.Dir(dir); p != "." && p != string(filepath.Separator); p = filepath.Dir(p) {
		if _, ok := created[p]; ok {
			break
		}
		created[p] = struct{}{}
	}

	result.DirsCreated++
	if e.observer != nil {
		e.observer.DirCreated(dir)
	}
	if opts.Verbose {
		e.logger.Info(ctx, "created directory", logging.Fields{"path": dir})
	}
	return nil
}
