// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package batch enumerates candidate files and drives the rewriter over
// each of them, one at a time, accumulating a report. A failure on one
// file never aborts the run.
package batch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/migrc/pkg/rewrite"
	"github.com/walteh/migrc/pkg/rule"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📢 Reporter receives per-file outcomes as they are produced, plus the
// final report. The batch package stays free of console concerns.
type Reporter interface {
	// FileResult is called once per candidate, in candidate order
	FileResult(res FileResult)

	// Summary is called once after the last candidate
	Summary(rep *Report)
}

// 🔧 Options configures a batch runner.
type Options struct {
	// Paths is an explicit candidate list; takes precedence over Glob
	Paths []string

	// Root is the base directory for Glob discovery
	Root string

	// Glob is a doublestar pattern (may contain **) rooted at Root
	Glob string

	// Rules are applied in priority order
	Rules []rule.Rule

	// Injection is the optional dependency-reference spec
	Injection *rewrite.Injection

	// DryRun reports what would change without writing anything
	DryRun bool

	// Async processes files concurrently; outcomes are still reported in
	// candidate order
	Async bool

	// Reporter receives outcomes; required
	Reporter Reporter
}

// 🏃 Runner executes one batch run over the candidate set.
type Runner struct {
	opts     Options
	rewriter *rewrite.Rewriter
}

// 🏭 NewRunner creates a runner for the given options.
func NewRunner(opts Options) (*Runner, error) {
	if len(opts.Rules) == 0 {
		return nil, errors.Errorf("at least one rule is required")
	}
	if len(opts.Paths) == 0 && opts.Glob == "" {
		return nil, errors.Errorf("either paths or a discovery glob is required")
	}
	if opts.Reporter == nil {
		return nil, errors.Errorf("reporter is required")
	}
	return &Runner{
		opts:     opts,
		rewriter: rewrite.New(opts.Rules, opts.Injection),
	}, nil
}

// 🏃 Run processes every candidate once and returns the report. Per-file
// failures are recorded, not returned; the only errors out of Run are
// candidate enumeration failures and context cancellation.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	candidates, err := r.candidates()
	if err != nil {
		return nil, errors.Errorf("enumerating candidates: %w", err)
	}

	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("candidates", len(candidates)).Bool("dry_run", r.opts.DryRun).Msg("starting batch run")

	var results []FileResult
	if r.opts.Async {
		results, err = r.runAsync(ctx, candidates)
	} else {
		results, err = r.runSync(ctx, candidates)
	}
	if err != nil {
		return nil, err
	}

	rep := &Report{}
	for _, res := range results {
		rep.Add(res)
	}
	r.opts.Reporter.Summary(rep)
	return rep, nil
}

// 🔄 runSync processes candidates one at a time, reporting as it goes
func (r *Runner) runSync(ctx context.Context, candidates []string) ([]FileResult, error) {
	results := make([]FileResult, 0, len(candidates))
	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("batch cancelled: %w", err)
		}
		res := r.processFile(ctx, path)
		r.opts.Reporter.FileResult(res)
		results = append(results, res)
	}
	return results, nil
}

// ⚡ runAsync processes candidates concurrently. Files are disjoint so no
// coordination is needed; outcomes are slotted by index and reported in
// candidate order after the group finishes, keeping console output
// deterministic.
func (r *Runner) runAsync(ctx context.Context, candidates []string) ([]FileResult, error) {
	results := make([]FileResult, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range candidates {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("batch cancelled: %w", err)
			}
			results[i] = r.processFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, res := range results {
		r.opts.Reporter.FileResult(res)
	}
	return results, nil
}

// 📂 candidates returns the candidate paths: the explicit list when given,
// otherwise a recursive glob walk rooted at Root.
func (r *Runner) candidates() ([]string, error) {
	if len(r.opts.Paths) > 0 {
		return r.opts.Paths, nil
	}

	root := r.opts.Root
	if root == "" {
		root = "."
	}

	matches, err := doublestar.Glob(os.DirFS(root), r.opts.Glob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("globbing %s under %s: %w", r.opts.Glob, root, err)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(m)))
	}
	return paths, nil
}

// 📄 processFile takes one candidate through its state machine. Every
// failure is absorbed into the result.
func (r *Runner) processFile(ctx context.Context, path string) FileResult {
	logger := zerolog.Ctx(ctx)
	res := FileResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.Outcome = OutcomeNotFound
			return res
		}
		res.Outcome = OutcomeFailed
		res.Err = errors.Errorf("stat: %w", err)
		return res
	}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = errors.Errorf("reading: %w", err)
		return res
	}
	text := string(data)

	// Idempotence guard before anything else, so a fully migrated file
	// reports as such even when no legacy pattern remains
	for _, rl := range r.opts.Rules {
		if rl.AlreadyMigrated(text) {
			res.Outcome = OutcomeAlreadyMigrated
			return res
		}
	}

	// Cheap substring pre-check before full matching
	if !anyHintPresent(r.opts.Rules, text) {
		res.Outcome = OutcomeNoMatch
		return res
	}

	out, err := r.rewriter.RewriteText(ctx, text)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	res.Applied = out.Applied
	res.Declined = out.Declined
	res.Injected = out.Injected

	switch {
	case out.AlreadyMigrated:
		res.Outcome = OutcomeAlreadyMigrated
		return res
	case !out.Changed:
		res.Outcome = OutcomeUnchanged
		return res
	}

	if r.opts.DryRun {
		logger.Debug().Str("path", path).Int("applied", out.Applied).Msg("dry run, not writing")
		res.Outcome = OutcomeUpdated
		return res
	}

	if err := os.WriteFile(path, []byte(out.Text), info.Mode().Perm()); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = errors.Errorf("writing: %w", err)
		return res
	}

	res.Outcome = OutcomeUpdated
	return res
}

// 🔍 anyHintPresent reports whether any rule's hint substring appears
func anyHintPresent(rules []rule.Rule, text string) bool {
	for _, rl := range rules {
		if strings.Contains(text, rl.Hint()) {
			return true
		}
	}
	return false
}
