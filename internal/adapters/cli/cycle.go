package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/colonybot/internal/adapters/metrics"
	"github.com/andrescamacho/colonybot/internal/application/colony"
	"github.com/andrescamacho/colonybot/internal/application/common"
	"github.com/andrescamacho/colonybot/internal/domain/shared"
	"github.com/andrescamacho/colonybot/internal/infrastructure/pidfile"
)

// NewCycleCommand creates the cycle command with subcommands
func NewCycleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Run economy cycles",
		Long: `Run the colony's economy cycle against a world snapshot.

A cycle prepares every outpost ledger, credits the deliveries listed in
the snapshot's income section, settles the ledgers and enqueues the
production requests for every unmet need.

Examples:
  colonybot cycle run --colony W1N1 --world world.yaml
  colonybot cycle run --count 0 --rate 1 --reload`,
	}

	cmd.AddCommand(newCycleRunCommand())

	return cmd
}

// newCycleRunCommand creates the cycle run subcommand
func newCycleRunCommand() *cobra.Command {
	var (
		count  int
		rps    float64
		burst  int
		reload bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one or more cycles",
		Long: `Run economy cycles for a colony.

Cycles are paced by a token bucket: --rate cycles per second with
bursts of --burst. A rate of 0 runs unthrottled. --count 0 runs until
interrupted. With --reload the world snapshot is read again before
every cycle.

Only one runner may drive the ledgers at a time; the runner holds the
lock file named by cycle.lock_file while it runs.

Examples:
  colonybot cycle run --colony W1N1 --world world.yaml
  colonybot cycle run --count 50 --rate 5 --burst 5
  colonybot cycle run --count 0 --reload`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cycleRunOptions{count: count, reload: reload}
			if cmd.Flags().Changed("rate") {
				opts.rate = &rps
			}
			if cmd.Flags().Changed("burst") {
				opts.burst = &burst
			}
			return runCycles(opts)
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "Number of cycles to run (0 = until interrupted)")
	cmd.Flags().Float64Var(&rps, "rate", 0, "Cycles per second (default from cycle.rate)")
	cmd.Flags().IntVar(&burst, "burst", 1, "Cycles allowed in a burst (default from cycle.burst)")
	cmd.Flags().BoolVar(&reload, "reload", false, "Re-read the world snapshot before every cycle")

	return cmd
}

type cycleRunOptions struct {
	count  int
	rate   *float64
	burst  *int
	reload bool
}

// runCycles executes the cycle run command
func runCycles(opts cycleRunOptions) error {
	if opts.count < 0 {
		return fmt.Errorf("--count cannot be negative")
	}

	name, err := resolveColony()
	if err != nil {
		return err
	}

	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	lock := pidfile.New(a.cfg.Cycle.LockFile)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}()

	ctx, stop := signal.NotifyContext(a.context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.Metrics.Enabled {
		server, err := metrics.NewServer(a.cfg.Metrics.Host, a.cfg.Metrics.Port, a.cfg.Metrics.Path)
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		serverErrs := server.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Stop(shutdownCtx)
		}()
		go func() {
			if err := <-serverErrs; err != nil {
				a.logger.Log("ERROR", "Metrics server failed", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	driver := &cycleDriver{
		mediator: a.mediator,
		ticks:    a.ticks,
		limiter:  newCycleLimiter(a.cfg.Cycle.Rate, a.cfg.Cycle.Burst, opts),
		income:   func() []colony.NodeIncome { return cycleIncome(a, name) },
		display:  displayCycle,
	}
	if opts.reload {
		driver.reload = a.reloadWorld
	}

	return driver.run(ctx, name, opts.count)
}

// cycleDriver sends paced cycles through the mediator. Outpost failures do
// not stop the loop; they are joined into the returned error.
type cycleDriver struct {
	mediator common.Mediator
	ticks    *shared.CounterTicks
	limiter  *rate.Limiter

	// reload is called before every cycle but the first when set
	reload  func() error
	income  func() []colony.NodeIncome
	display func(*colony.RunCycleResponse)
}

func (d *cycleDriver) run(ctx context.Context, colonyName string, count int) error {
	var failures []error

	for i := 0; count == 0 || i < count; i++ {
		if err := d.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			return fmt.Errorf("cycle limiter: %w", err)
		}

		if d.reload != nil && i > 0 {
			if err := d.reload(); err != nil {
				return err
			}
		}

		var income []colony.NodeIncome
		if d.income != nil {
			income = d.income()
		}

		tick := d.ticks.CurrentTick()
		resp, err := d.mediator.Send(ctx, &colony.RunCycleCommand{
			ColonyName: colonyName,
			Income:     income,
		})
		if err != nil {
			return errors.Join(append(failures, fmt.Errorf("cycle %d failed: %w", tick, err))...)
		}

		summary := resp.(*colony.RunCycleResponse)
		if d.display != nil {
			d.display(summary)
		}
		if err := summary.Err(); err != nil {
			failures = append(failures, fmt.Errorf("cycle %d: %w", tick, err))
		}
		d.ticks.Next()
	}

	return errors.Join(failures...)
}

// newCycleLimiter builds the pacing bucket; flags override configuration
func newCycleLimiter(cfgRate float64, cfgBurst int, opts cycleRunOptions) *rate.Limiter {
	rps, burst := cfgRate, cfgBurst
	if opts.rate != nil {
		rps = *opts.rate
	}
	if opts.burst != nil {
		burst = *opts.burst
	}
	if burst < 1 {
		burst = 1
	}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return rate.NewLimiter(limit, burst)
}

func cycleIncome(a *app, name string) []colony.NodeIncome {
	deliveries := a.world.Income(name)
	income := make([]colony.NodeIncome, len(deliveries))
	for i, d := range deliveries {
		income[i] = colony.NodeIncome{OutpostName: d.Outpost, NodeIndex: d.Node, Amount: d.Amount}
	}
	return income
}

func displayCycle(resp *colony.RunCycleResponse) {
	fmt.Printf("Tick %d: %d outposts processed, %d requests enqueued\n",
		resp.Tick, resp.Processed, len(resp.Requests))

	if len(resp.Removed) > 0 {
		fmt.Printf("  Removed:    %s\n", strings.Join(resp.Removed, ", "))
	}
	if len(resp.Abandoned) > 0 {
		fmt.Printf("  Abandoned:  %s\n", strings.Join(resp.Abandoned, ", "))
	}
	if len(resp.Propagated) > 0 {
		fmt.Printf("  Propagated: %s\n", strings.Join(resp.Propagated, ", "))
	}
	for _, f := range resp.Failures {
		fmt.Printf("  Failed:     %s (%v)\n", f.Outpost, f.Err)
	}
	for _, req := range resp.Requests {
		fmt.Printf("  + %-40s cost=%-5d parts=%d\n", req.Name, req.Cost, len(req.Body))
	}
}
