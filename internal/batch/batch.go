// Package batch fans statement processing out over a worker pool.
// One statement is one unit of work; a failure in one never affects
// another, and results come back in input order.
package batch

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/estatement-dev/estatement/internal/parse"
	"github.com/estatement-dev/estatement/internal/pattern"
)

// ErrUnknownBank reports that no configured bank matched the
// statement text.
var ErrUnknownBank = errors.New("could not detect bank from statement text")

// Statement is one unit of work: a named text blob, with an optional
// pre-assigned bank (detected from the text when empty).
type Statement struct {
	Name string
	Bank string
	Text string
}

// Outcome is the per-statement result. Err is set for statement-level
// failures (unknown bank, missing statement date); per-line failures
// live inside Result as rejections.
type Outcome struct {
	Statement string
	Bank      string
	Result    parse.Result
	Err       error
}

// Runner processes statements concurrently against a shared pattern
// registry. The registry is read-only, so workers share it freely.
type Runner struct {
	registry *pattern.Registry
	workers  int
	logger   *slog.Logger
}

// New creates a Runner with the given parallelism. Workers below 1
// are clamped to 1.
func New(registry *pattern.Registry, workers int, logger *slog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{registry: registry, workers: workers, logger: logger}
}

// Process runs every statement through the pipeline and returns one
// Outcome per statement, in the same order as the input.
func (r *Runner) Process(stmts []Statement) []Outcome {
	outcomes := make([]Outcome, len(stmts))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = r.processOne(stmts[i])
			}
		}()
	}

	for i := range stmts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

func (r *Runner) processOne(s Statement) Outcome {
	out := Outcome{Statement: s.Name, Bank: s.Bank}

	if out.Bank == "" {
		bank, ok := r.registry.Detect(s.Text)
		if !ok {
			r.logger.Warn("bank detection failed", "statement", s.Name)
			out.Err = ErrUnknownBank
			return out
		}
		out.Bank = bank
	}

	p, err := r.registry.Get(out.Bank)
	if err != nil {
		out.Err = err
		return out
	}

	res, err := parse.ProcessStatement(p, s.Text)
	if err != nil {
		r.logger.Warn("statement failed", "statement", s.Name, "bank", out.Bank, "error", err)
		out.Err = err
		return out
	}

	out.Result = res
	r.logger.Info("statement processed",
		"statement", s.Name,
		"bank", out.Bank,
		"transactions", len(res.Transactions()),
		"rejections", len(res.Rejections()))
	return out
}
