package tree

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/nao1215/dirschema/internal/model"
)

// gitignoreFile is the ignore file read from the walk root.
const gitignoreFile = ".gitignore"

// WalkOptions tunes a walk.
type WalkOptions struct {
	// RespectGitignore prunes directories and drops files matched by the
	// root .gitignore.
	RespectGitignore bool

	// Logger receives debug and warning lines. Nil discards them.
	Logger *slog.Logger
}

// Excluded reports whether name contains any of the patterns.
func Excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

// walker carries the state of one walk.
type walker struct {
	root    string
	exclude []string
	ignorer *ignore.GitIgnore
	logger  *slog.Logger
	nodes   []model.DirNode
}

// Walk visits root top-down and returns the listing without writing it.
//
// root must exist and be a directory. Subdirectories that cannot be read are
// skipped with a warning. The walk stops early when ctx is canceled.
func Walk(ctx context.Context, root string, exclude []string, opts WalkOptions) (*model.Listing, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, abs)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDir, abs)
	}

	exclude = uniquePatterns(exclude)
	listing := &model.Listing{
		Root:        abs,
		GeneratedAt: time.Now(),
		Exclude:     exclude,
	}

	w := &walker{
		root:    filepath.Clean(root),
		exclude: exclude,
		logger:  logger,
	}
	if opts.RespectGitignore {
		w.ignorer = loadGitignore(abs, logger)
	}

	if Excluded(filepath.Base(w.root), exclude) {
		logger.Debug("root directory excluded", "path", abs)
		return listing, nil
	}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", abs, err)
	}
	if err := w.visit(ctx, w.root, "", 0, entries); err != nil {
		return nil, err
	}

	listing.Nodes = w.nodes
	return listing, nil
}

// visit records dir and then descends into its surviving child directories.
// rel is dir relative to the walk root in slash form, empty for the root.
func (w *walker) visit(ctx context.Context, dir, rel string, level int, entries []os.DirEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.logger.Debug("visiting directory", "path", dir, "level", level)

	node := model.DirNode{
		Path:  dir,
		Name:  filepath.Base(dir),
		Level: level,
	}

	// Children that are real directories, in read order. Symlinked
	// directories count for the listing but are never descended into.
	var descend []string
	for _, entry := range entries {
		name := entry.Name()
		childRel := joinRel(rel, name)

		isDir, followable := w.classify(dir, entry)
		if !isDir {
			if w.ignored(childRel, false) {
				w.logger.Debug("file ignored by .gitignore", "path", childRel)
				continue
			}
			node.Files = append(node.Files, name)
			continue
		}

		if Excluded(name, w.exclude) {
			w.logger.Debug("pruned directory", "path", filepath.Join(dir, name))
			continue
		}
		if w.ignored(childRel, true) {
			w.logger.Debug("directory ignored by .gitignore", "path", childRel)
			continue
		}
		node.Dirs = append(node.Dirs, name)
		if followable {
			descend = append(descend, name)
		}
	}
	sort.Strings(node.Files)
	sort.Strings(node.Dirs)
	sort.Strings(descend)
	w.nodes = append(w.nodes, node)

	for _, name := range descend {
		child := filepath.Join(dir, name)
		entries, err := os.ReadDir(child)
		if err != nil {
			w.logger.Warn("skipping unreadable directory", "path", child, "error", err)
			continue
		}
		if err := w.visit(ctx, child, joinRel(rel, name), level+1, entries); err != nil {
			return err
		}
	}
	return nil
}

// classify reports whether entry is a directory and whether the walk may
// descend into it. A symlink to a directory is a directory that is not
// followed. A broken symlink is a file.
func (w *walker) classify(dir string, entry os.DirEntry) (isDir, followable bool) {
	if entry.IsDir() {
		return true, true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false, false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	if err != nil {
		return false, false
	}
	return info.IsDir(), false
}

// ignored reports whether rel is matched by the root .gitignore.
func (w *walker) ignored(rel string, dir bool) bool {
	if w.ignorer == nil {
		return false
	}
	if dir {
		return w.ignorer.MatchesPath(rel + "/")
	}
	return w.ignorer.MatchesPath(rel)
}

// loadGitignore compiles the .gitignore at the walk root, if any.
func loadGitignore(root string, logger *slog.Logger) *ignore.GitIgnore {
	path := filepath.Join(root, gitignoreFile)
	if _, err := os.Stat(path); err != nil {
		logger.Debug("no .gitignore at walk root", "path", path)
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		logger.Warn("failed to read .gitignore", "path", path, "error", err)
		return nil
	}
	logger.Debug("loaded .gitignore", "path", path)
	return gi
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}

// uniquePatterns drops empty and repeated patterns, keeping first occurrences.
// An empty pattern would match every directory.
func uniquePatterns(patterns []string) []string {
	seen := make(map[string]struct{}, len(patterns))
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
