package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonybot/internal/domain/spawning"
)

// NewQueueCommand creates the queue command with subcommands
func NewQueueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and drain the production queue",
		Long: `Inspect the production requests emitted by the allocator.

Requests stay pending until they are drained and handed to the spawns.
Pending requests are listed most urgent first.

Examples:
  colonybot queue list
  colonybot queue drain --limit 3`,
	}

	cmd.AddCommand(newQueueListCommand())
	cmd.AddCommand(newQueueDrainCommand())

	return cmd
}

// newQueueListCommand creates the queue list subcommand
func newQueueListCommand() *cobra.Command {
	var showBody bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pending production requests",
		Long: `List the colony's pending production requests.

Example:
  colonybot queue list --colony W1N1 --body`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := resolveColony()
			if err != nil {
				return err
			}

			a, err := newApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			requests, err := a.queue.ListPending(a.context(), name)
			if err != nil {
				return err
			}

			displayRequests(requests, showBody)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showBody, "body", false, "Print every body part")

	return cmd
}

// newQueueDrainCommand creates the queue drain subcommand
func newQueueDrainCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "drain",
		Short: "Hand pending requests to the spawns",
		Long: `Mark pending production requests as drained and print them.

Requests are drained most urgent first. A limit of 0 drains the whole
queue.

Examples:
  colonybot queue drain
  colonybot queue drain --limit 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit cannot be negative")
			}

			name, err := resolveColony()
			if err != nil {
				return err
			}

			a, err := newApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			requests, err := a.queue.Drain(a.context(), name, limit)
			if err != nil {
				return err
			}

			displayRequests(requests, true)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of requests to drain (0 = all)")

	return cmd
}

func displayRequests(requests []*spawning.ProductionRequest, showBody bool) {
	if len(requests) == 0 {
		fmt.Println("No pending requests")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "NAME\tROLE\tPRIORITY\tTIER\tPARTS\tCOST\tOUTPOST"
	if showBody {
		header += "\tBODY"
	}
	fmt.Fprintln(w, header)

	for _, req := range requests {
		outpost := req.Memory["outpost"]
		if outpost == "" {
			outpost = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%d\t%d\t%d\t%s",
			req.Name, req.Role, req.Priority, req.Tier, len(req.Body), req.Cost, outpost)
		if showBody {
			fmt.Fprintf(w, "\t%s", strings.Join(req.Body.Strings(), ","))
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d requests\n", len(requests))
}
