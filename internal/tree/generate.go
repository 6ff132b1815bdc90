package tree

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/dirschema/internal/config"
	"github.com/nao1215/dirschema/internal/model"
	"github.com/nao1215/dirschema/internal/report"
)

// Generate walks opts.Root and writes the listing to opts.Output in the
// configured format, replacing any existing file.
//
// The output is only replaced once the walk has succeeded, so a bad root or a
// canceled walk leaves an existing output untouched. A missing output is
// created empty before the walk, so when it lives under the root it shows up
// in its own listing; it is removed again if the walk fails.
func Generate(ctx context.Context, opts config.TreeOptions, logger *slog.Logger) (*model.Listing, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// Fail on a bad root before the output is touched.
	abs, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", opts.Root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, abs)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", opts.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDir, abs)
	}

	created, err := touch(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	listing, err := Walk(ctx, opts.Root, opts.Exclude, WalkOptions{
		RespectGitignore: opts.RespectGitignore,
		Logger:           logger,
	})
	if err != nil {
		if created {
			if rmErr := os.Remove(opts.Output); rmErr != nil {
				logger.Warn("failed to remove empty output", "output", opts.Output, "error", rmErr)
			}
		}
		return nil, err
	}

	var buf bytes.Buffer
	lw, err := report.NewListingWriter(opts.Format, &buf)
	if err != nil {
		return nil, err
	}
	if _, err := lw.WriteListing(listing); err != nil {
		return nil, fmt.Errorf("failed to render listing: %w", err)
	}
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil { //nolint:gosec // Listing is meant to be shared
		return nil, fmt.Errorf("failed to write listing: %w", err)
	}

	logger.Debug("tree listing written",
		"output", opts.Output,
		"directories", len(listing.Nodes),
		"files", listing.FileCount(),
	)
	return listing, nil
}

// touch creates path empty if it does not exist yet and reports whether it did.
// An existing file is left as it is.
func touch(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) //nolint:gosec // Output path comes from the command line
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, f.Close()
}
