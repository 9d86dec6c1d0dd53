// Package continuity chains calls that continue if there's no error, or
// stop recording further steps once the first one fails. Each call
// returns the same chain object so steps can be composed fluently.
package continuity

import "strings"

// Chain accumulates the first failure from a sequence of Thenf calls;
// later steps are skipped once one has failed.
type Chain struct {
	failedAt errArray
}

type errArray []error

func (e errArray) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	errs := make([]string, len(e))
	for i, err := range e {
		errs[i] = err.Error()
	}
	return "multiple errors: " + strings.Join(errs, ", ")
}

// New starts an empty chain.
func New() *Chain {
	return new(Chain)
}

// Thenf runs f if no prior step has failed, recording its error (if any).
// name labels the step at the call site only; it is not recorded and
// does not appear in the returned error.
func (c *Chain) Thenf(name string, f func() error) *Chain {
	if len(c.failedAt) > 0 {
		return c
	}
	if err := f(); err != nil {
		c.failedAt = append(c.failedAt, err)
	}
	return c
}

// Err returns the first recorded failure, or nil if every step so far
// succeeded.
func (c *Chain) Err() error {
	if len(c.failedAt) == 0 {
		return nil
	}
	return c.failedAt
}
