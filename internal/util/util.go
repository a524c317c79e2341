package util

import (
	"context"
	"encoding/json"
	"path"
	"runtime"

	"github.com/go-git/go-billy/v5"
	billyutil "github.com/go-git/go-billy/v5/util"
	"golang.org/x/sync/errgroup"
)

// WriteJSON writes a JSON file atomically: it is written to a temp file in
// the same directory and renamed over name.
func WriteJSON(fsys billy.Filesystem, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := billyutil.TempFile(fsys, path.Dir(name), "tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer fsys.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return fsys.Rename(tmpName, name)
}

// ReadJSON reads a JSON file and unmarshals it into v.
func ReadJSON(fsys billy.Filesystem, name string, v any) error {
	data, err := billyutil.ReadFile(fsys, name)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// WorkerCount returns the number of workers for concurrent operations.
func WorkerCount() int {
	return runtime.NumCPU()
}

// Parallel runs fn concurrently for each item in inputs, limited by
// workerLimit. The first error cancels ctx for the remaining calls and is
// returned.
func Parallel[T any](ctx context.Context, inputs []T, workerLimit int, fn func(context.Context, T) error) error {
	if len(inputs) == 0 {
		return nil
	}
	if workerLimit < 1 {
		workerLimit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit)
	for _, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, in)
		})
	}
	return g.Wait()
}
