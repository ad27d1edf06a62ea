package sneptile

import (
	"context"
	"image"
	"path/filepath"
	"sync"

	"github.com/bodgit/sneptile/source"
)

// Opener returns the decoded image for a file name.
type Opener func(name string) (*image.NRGBA, error)

// NewOpener returns an Opener decoding files from disk. If reduce is
// non-zero, each image is first cut down to that many colours.
func NewOpener(reduce int) Opener {
	return func(name string) (*image.NRGBA, error) {
		m, err := source.Open(name)
		if err != nil {
			return nil, err
		}
		if reduce > 0 {
			m = source.Reduce(m, reduce)
		}
		return m, nil
	}
}

type decoded struct {
	m   *image.NRGBA
	err error
}

// decodeFiles decodes the files using a pool of workers. Each file gets its
// own result channel so the results can be consumed in order regardless of
// which finishes first. No more than workers files are decoded ahead of the
// caller, which must call done after taking each result.
func decodeFiles(ctx context.Context, files []string, open Opener, workers int) (results []chan decoded, done func(), wait func()) {
	results = make([]chan decoded, len(files))
	for i := range results {
		results[i] = make(chan decoded, 1)
	}

	if workers < 1 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	in := make(chan int)
	go func() {
		defer close(in)
		for i := range files {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			select {
			case in <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for n := range in {
				if err := ctx.Err(); err != nil {
					results[n] <- decoded{err: err}
					continue
				}
				m, err := open(files[n])
				results[n] <- decoded{m, err}
			}
		}()
	}

	return results, func() { <-sem }, wg.Wait
}

// Run applies the directives to the session in order. Files are decoded
// concurrently by up to workers goroutines, never more than workers ahead of
// the encoder, but are always encoded in the order given. The first error
// stops the run.
func Run(ctx context.Context, s *Session, directives []Directive, open Opener, workers int) error {
	ctx, cancelFunc := context.WithCancel(ctx)

	results, done, wait := decodeFiles(ctx, Files(directives), open, workers)
	defer wait()
	defer cancelFunc()

	n := 0
	for _, d := range directives {
		if d.Kind != File {
			if err := s.Apply(d); err != nil {
				return err
			}
			continue
		}

		var r decoded
		select {
		case r = <-results[n]:
		case <-ctx.Done():
			return ctx.Err()
		}
		done()
		n++

		if r.err != nil {
			return r.err
		}

		if err := s.Encode(filepath.Base(d.Name), r.m); err != nil {
			return err
		}
	}

	return nil
}
