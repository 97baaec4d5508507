// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package export renders every public route through the site handler
// into a directory of static HTML files.
package export

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sync"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"chriscakes/internal/content"
)

// Routes are the fixed pages exported before the CMS pages.
var Routes = []string{"/", "/menu", "/contact", "/services", "/fundraising"}

// notFoundProbe is requested to capture the not-found page as 404.html.
const notFoundProbe = "/__not-found__/"

// Options configure an export run.
type Options struct {
	OutDir      string
	Static      fs.FS // copied to <OutDir>/static when set
	Concurrency int   // parallel renders; 4 when zero
}

// Failure is a route that did not render with 200.
type Failure struct {
	Path   string
	Status int
}

// Result summarizes an export run.
type Result struct {
	Pages    int
	Bytes    uint64
	Static   int
	Failures []Failure
}

// Run renders the fixed routes plus one route per CMS page and writes
// each to <out>/<path>/index.html. Routes answering with another status
// are reported in Result.Failures and not written.
func Run(ctx context.Context, h http.Handler, src content.Source, opts Options) (*Result, error) {
	if opts.OutDir == "" {
		return nil, fmt.Errorf("export: output directory is required")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	paths, err := routes(ctx, src)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for _, p := range paths {
		g.Go(func() error {
			status, body := fetch(gctx, h, p)
			mu.Lock()
			defer mu.Unlock()
			if status != http.StatusOK {
				slog.Warn("export route failed", "path", p, "status", status)
				res.Failures = append(res.Failures, Failure{Path: p, Status: status})
				return nil
			}
			if err := writeFile(filepath.Join(opts.OutDir, pageFile(p)), body); err != nil {
				return fmt.Errorf("write %s: %w", p, err)
			}
			res.Pages++
			res.Bytes += uint64(len(body))
			return nil
		})
	}
	g.Go(func() error {
		status, body := fetch(gctx, h, notFoundProbe)
		if status != http.StatusNotFound {
			slog.Warn("unexpected status for not-found page", "status", status)
			return nil
		}
		return writeFile(filepath.Join(opts.OutDir, "404.html"), body)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Static != nil {
		n, err := copyTree(opts.Static, filepath.Join(opts.OutDir, "static"))
		if err != nil {
			return nil, fmt.Errorf("copy static assets: %w", err)
		}
		res.Static = n
	}

	slices.SortFunc(res.Failures, func(a, b Failure) int {
		return cmp.Compare(a.Path, b.Path)
	})

	slog.Info("export complete",
		"dir", opts.OutDir,
		"pages", res.Pages,
		"size", humanize.Bytes(res.Bytes),
		"static_files", res.Static,
		"failures", len(res.Failures),
	)
	return res, nil
}

// routes lists the fixed routes followed by every CMS page slug that is
// not already a fixed route.
func routes(ctx context.Context, src content.Source) ([]string, error) {
	pages, err := src.AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	out := slices.Clone(Routes)
	for _, p := range pages {
		route := "/" + p.Slug.Current
		if p.Slug.Current == "" || slices.Contains(out, route) {
			continue
		}
		out = append(out, route)
	}
	return out, nil
}

func fetch(ctx context.Context, h http.Handler, route string) (int, []byte) {
	req := httptest.NewRequestWithContext(ctx, http.MethodGet, route, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code, rec.Body.Bytes()
}

// pageFile maps a route to its file: "/" is index.html and "/menu" is
// menu/index.html.
func pageFile(route string) string {
	clean := path.Clean("/" + route)
	if clean == "/" {
		return "index.html"
	}
	return filepath.Join(filepath.FromSlash(clean[1:]), "index.html")
}

func writeFile(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}

// copyTree copies every regular file of fsys into dir and returns the
// number of files copied.
func copyTree(fsys fs.FS, dir string) (int, error) {
	n := 0
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(name))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if err := copyFile(fsys, name, target); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

func copyFile(fsys fs.FS, name, target string) error {
	in, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
