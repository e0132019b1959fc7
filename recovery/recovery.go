// Package recovery runs the secret reconstruction over a batch of case files.
// Each case is independent: a failing case is reported in its Result and
// never stops the others.
package recovery

import (
	"context"
	"math/big"
	"runtime"
	"sharerecovery/casefile"
	"sharerecovery/lagrange"
	"sharerecovery/logging"
	"sharerecovery/secretsharing"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// Result is the outcome of one case
type Result struct {
	Path   string
	Secret *big.Int
	Err    error
}

// Runner recovers the secrets of case files
type Runner struct {
	modulus *big.Int
	workers int
	// select the first k shares when a case carries more than k
	selectShares bool
	log          zerolog.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithModulus sets the field prime
func WithModulus(m *big.Int) Option {
	return func(r *Runner) {
		r.modulus = m
	}
}

// WithWorkers bounds the number of cases processed at the same time
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithShareSelection makes the runner keep the first k shares of each case
// instead of requiring exactly k
func WithShareSelection(enabled bool) Option {
	return func(r *Runner) {
		r.selectShares = enabled
	}
}

// WithLogger replaces the default logger
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

func NewRunner(opts ...Option) (*Runner, error) {
	r := &Runner{
		modulus:      lagrange.DefaultModulus(),
		workers:      runtime.NumCPU(),
		selectShares: true,
		log:          logging.GetLogger("recovery"),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := lagrange.CheckModulus(r.modulus); err != nil {
		return nil, err
	}
	return r, nil
}

// RecoverCase returns the secret of a single case
func (r *Runner) RecoverCase(c secretsharing.Case) (*big.Int, error) {
	if r.selectShares {
		selected, err := secretsharing.SelectShares(c)
		if err != nil {
			return nil, err
		}
		c = selected
	}
	return secretsharing.Recover(c, r.modulus)
}

// RecoverFile loads the case at path and recovers its secret
func (r *Runner) RecoverFile(path string) (*big.Int, error) {
	c, err := casefile.Load(path)
	if err != nil {
		return nil, err
	}
	return r.RecoverCase(c)
}

// Run processes all the paths and returns one Result per path, in the same
// order. Cases not started when ctx is done get ctx's error.
func (r *Runner) Run(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))

	g := errgroup.Group{}
	g.SetLimit(r.workers)
	for i, path := range paths {
		i, path := i, path
		results[i].Path = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = xerrors.Errorf("case not processed: %w", err)
				return nil
			}

			secret, err := r.RecoverFile(path)
			if err != nil {
				r.log.Err(err).Str("case", path).Msg("Recovery failed")
				results[i].Err = err
				return nil
			}

			r.log.Debug().Str("case", path).Str("secret", secret.String()).Msg("Secret recovered")
			results[i].Secret = secret
			return nil
		})
	}

	// Goroutines never return an error, failures are kept per case
	_ = g.Wait()
	return results
}
