package iconversion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// IconResult describes the outcome for a single icon.
type IconResult struct {
	Path     string
	Skipped  bool
	Duration time.Duration
}

// Report summarizes a catalog run.
type Report struct {
	VersionedPath string
	Processed     []string
	Skipped       []string
}

// Catalog versions every icon of an appiconset into its versioned copy.
type Catalog struct {
	Options Options
	Logger  *zap.Logger

	// OnIcon, when set, is called once per icon. Calls may come from
	// several goroutines at once.
	OnIcon func(IconResult)
}

// NewCatalog returns a catalog runner for the given options.
func NewCatalog(opts Options, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{Options: opts, Logger: logger}
}

// Run copies the catalog to its versioned path and versions the icons of the copy.
func (c *Catalog) Run(ctx context.Context) (*Report, error) {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if err := c.Options.Validate(); err != nil {
		return nil, err
	}

	src, err := filepath.Abs(c.Options.AppIconSetPath)
	if err != nil {
		return nil, fmt.Errorf("unable to get absolute path: %w", err)
	}
	dst := VersionedPath(src)
	if overlaps(src, dst) {
		return nil, fmt.Errorf("%w: %s", ErrVersionedPath, src)
	}

	proc, err := NewProcessor(c.Options)
	if err != nil {
		return nil, err
	}

	if err := copyCatalog(src, dst); err != nil {
		return nil, err
	}
	c.Logger.Debug("catalog copied", zap.String("src", src), zap.String("dst", dst))

	icons, err := filepath.Glob(filepath.Join(dst, "*.png"))
	if err != nil {
		return nil, fmt.Errorf("unable to list icons: %w", err)
	}
	sort.Strings(icons)

	report := &Report{VersionedPath: dst}
	var todo []string
	for _, icon := range icons {
		if c.ignored(icon) {
			report.Skipped = append(report.Skipped, icon)
			c.Logger.Debug("icon ignored", zap.String("icon", icon))
			c.notify(IconResult{Path: icon, Skipped: true})
			continue
		}
		todo = append(todo, icon)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Options.workers())

	for _, icon := range todo {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			if err := proc.VersionFile(icon); err != nil {
				return fmt.Errorf("%s: %w", icon, err)
			}
			elapsed := time.Since(start)
			c.Logger.Debug("icon versioned", zap.String("icon", icon), zap.Duration("elapsed", elapsed))
			c.notify(IconResult{Path: icon, Duration: elapsed})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Processed = todo
	c.Logger.Info("catalog versioned",
		zap.String("path", dst),
		zap.Int("processed", len(report.Processed)),
		zap.Int("skipped", len(report.Skipped)),
	)
	return report, nil
}

func (c *Catalog) ignored(icon string) bool {
	re := c.Options.IgnoredIconsRegex
	return re != nil && re.MatchString(icon)
}

func (c *Catalog) notify(r IconResult) {
	if c.OnIcon != nil {
		c.OnIcon(r)
	}
}

// overlaps reports whether dst is src or one of its ancestors.
func overlaps(src, dst string) bool {
	rel, err := filepath.Rel(dst, src)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// copyCatalog replaces dst with a recursive copy of src.
func copyCatalog(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("unable to remove %s: %w", dst, err)
	}
	if err := os.CopyFS(dst, os.DirFS(src)); err != nil {
		return fmt.Errorf("unable to copy %s: %w", src, err)
	}
	return nil
}
