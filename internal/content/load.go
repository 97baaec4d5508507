// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Task is one fetch in a Load batch.
type Task struct {
	name string
	run  func(ctx context.Context) error
}

// Into builds a Task that stores fn's result in dst. On error dst is left
// at its zero value.
func Into[T any](dst *T, name string, fn func(ctx context.Context) (T, error)) Task {
	return Task{
		name: name,
		run: func(ctx context.Context) error {
			v, err := fn(ctx)
			if err != nil {
				var zero T
				*dst = zero
				return err
			}
			*dst = v
			return nil
		},
	}
}

// Load runs every task concurrently and waits for all of them. A failed
// task is logged and does not stop the others; the returned error joins
// every failure so callers that need one result can still tell.
func Load(ctx context.Context, tasks ...Task) error {
	errs := make([]error, len(tasks))

	var g errgroup.Group
	for i, t := range tasks {
		g.Go(func() error {
			if err := t.run(ctx); err != nil {
				slog.Error("content fetch failed", "query", t.name, "error", err)
				errs[i] = fmt.Errorf("%s: %w", t.name, err)
			}
			return nil
		})
	}
	g.Wait()

	return errors.Join(errs...)
}
