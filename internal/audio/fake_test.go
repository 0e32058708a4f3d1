package audio

import (
	"context"
	"fmt"

	"speakerup/internal/shell"
)

// fakeRunner feeds canned results to backends and records every
// command they build.
type fakeRunner struct {
	results []fakeResult
	calls   []shell.Command
}

type fakeResult struct {
	out string
	err error
}

func (f *fakeRunner) Run(ctx context.Context, cmd shell.Command) (*shell.Result, error) {
	f.calls = append(f.calls, cmd)
	if len(f.results) == 0 {
		return nil, fmt.Errorf("fakeRunner: unexpected call to %s", cmd.Binary)
	}
	r := f.results[0]
	f.results = f.results[1:]
	if r.err != nil {
		return nil, r.err
	}
	return &shell.Result{Stdout: r.out}, nil
}
