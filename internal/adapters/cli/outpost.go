package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonybot/internal/application/economy/commands"
	"github.com/andrescamacho/colonybot/internal/application/economy/queries"
)

// NewOutpostCommand creates the outpost command with subcommands
func NewOutpostCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outpost",
		Short: "Manage a colony's outpost ledgers",
		Long: `Register, inspect and abandon the remote outposts a colony exploits.

Every outpost keeps one credit ledger per resource node. The ledgers are
updated by 'colonybot cycle run'; these commands read and seed them.

Examples:
  colonybot outpost register W1N2 --nodes 2 --path-length 40
  colonybot outpost register W1N2 --paths-through W1N3,W2N3
  colonybot outpost list
  colonybot outpost requirements --outpost W1N2
  colonybot outpost abandon W1N2 --ticks 500`,
	}

	cmd.AddCommand(newOutpostListCommand())
	cmd.AddCommand(newOutpostRegisterCommand())
	cmd.AddCommand(newOutpostAbandonCommand())
	cmd.AddCommand(newOutpostRequirementsCommand())

	return cmd
}

// newOutpostListCommand creates the outpost list subcommand
func newOutpostListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List outposts and their node ledgers",
		Long: `List every outpost recorded for the colony with its route, its
abandonment state and the ledger of each resource node.

Example:
  colonybot outpost list --colony W1N1`,
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

			result, err := a.mediator.Send(a.context(), &queries.ListOutpostsQuery{ColonyName: name})
			if err != nil {
				return fmt.Errorf("failed to list outposts: %w", err)
			}

			displayOutposts(result.(*queries.ListOutpostsResponse))
			return nil
		},
	}

	return cmd
}

func displayOutposts(resp *queries.ListOutpostsResponse) {
	if len(resp.Outposts) == 0 {
		fmt.Println("No outposts registered")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OUTPOST\tNODE\tCREDIT\tMAX INCOME\tCONTAINER\tHARVEST\tHAUL\tPATH\tABANDON\tTHROUGH")
	fmt.Fprintln(w, "-------\t----\t------\t----------\t---------\t-------\t----\t----\t-------\t-------")

	for _, o := range resp.Outposts {
		through := strings.Join(o.PathsThrough, ",")
		if through == "" {
			through = "-"
		}
		for _, n := range o.Nodes {
			fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%t\t%d\t%d\t%d\t%d\t%s\n",
				o.Name, n.Index, n.Credit, n.MaxIncome, n.HasContainer,
				n.Harvester, n.Hauler, o.PathLength, o.AbandonCountdown, through)
		}
	}
	w.Flush()
}

// newOutpostRegisterCommand creates the outpost register subcommand
func newOutpostRegisterCommand() *cobra.Command {
	var (
		nodes        int
		pathLength   int
		pathsThrough []string
	)

	cmd := &cobra.Command{
		Use:   "register <outpost>",
		Short: "Register an outpost",
		Long: `Add an outpost to the colony's ledger.

Registering an outpost that already exists keeps its ledgers and only
replaces its path length and the outposts whose route runs through it.

Examples:
  colonybot outpost register W1N2 --nodes 2 --path-length 40
  colonybot outpost register W1N2 --path-length 42 --paths-through W1N3`,
		Args: cobra.ExactArgs(1),
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

			result, err := a.mediator.Send(a.context(), &commands.RegisterOutpostCommand{
				ColonyName:   name,
				OutpostName:  args[0],
				NodeCount:    nodes,
				PathLength:   pathLength,
				PathsThrough: pathsThrough,
			})
			if err != nil {
				return fmt.Errorf("failed to register outpost: %w", err)
			}

			resp := result.(*commands.RegisterOutpostResponse)
			if resp.Created {
				fmt.Printf("✓ Outpost %s registered for %s\n", resp.Outpost.Name, name)
			} else {
				fmt.Printf("✓ Outpost %s route updated\n", resp.Outpost.Name)
			}
			fmt.Printf("  Nodes:         %d\n", len(resp.Outpost.Nodes))
			fmt.Printf("  Path length:   %d\n", resp.Outpost.PathLength)
			if len(resp.Outpost.PathsThrough) > 0 {
				fmt.Printf("  Paths through: %s\n", strings.Join(resp.Outpost.PathsThrough, ", "))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&nodes, "nodes", 1, "Number of resource nodes")
	cmd.Flags().IntVar(&pathLength, "path-length", 0, "Route length from the colony anchor")
	cmd.Flags().StringSliceVar(&pathsThrough, "paths-through", nil, "Outposts whose route crosses this one")

	return cmd
}

// newOutpostAbandonCommand creates the outpost abandon subcommand
func newOutpostAbandonCommand() *cobra.Command {
	var ticks int

	cmd := &cobra.Command{
		Use:   "abandon <outpost>",
		Short: "Abandon an outpost for a number of cycles",
		Long: `Put an outpost into abandonment.

A shorter abandonment never replaces a longer one. The next cycle
extends the abandonment to every outpost whose route runs through it.

Example:
  colonybot outpost abandon W1N2 --ticks 500`,
		Args: cobra.ExactArgs(1),
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

			result, err := a.mediator.Send(a.context(), &commands.AbandonOutpostCommand{
				ColonyName:  name,
				OutpostName: args[0],
				Ticks:       ticks,
			})
			if err != nil {
				return fmt.Errorf("failed to abandon outpost: %w", err)
			}

			resp := result.(*commands.AbandonOutpostResponse)
			if resp.Raised {
				fmt.Printf("✓ Outpost %s abandoned for %d cycles\n", args[0], resp.Countdown)
			} else {
				fmt.Printf("Outpost %s already abandoned for %d cycles\n", args[0], resp.Countdown)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&ticks, "ticks", 0, "Abandonment duration in cycles [required]")
	cmd.MarkFlagRequired("ticks")

	return cmd
}

// newOutpostRequirementsCommand creates the outpost requirements subcommand
func newOutpostRequirementsCommand() *cobra.Command {
	var outpost string

	cmd := &cobra.Command{
		Use:   "requirements",
		Short: "Show the demand derived by the last cycle",
		Long: `Show the capability each outpost asked for after the last settle pass.

Harvest and haul figures are in body parts. Abandoned outposts ask for
nothing; blocked outposts only ask for clearing workers.

Examples:
  colonybot outpost requirements
  colonybot outpost requirements --outpost W1N2`,
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

			result, err := a.mediator.Send(a.context(), &queries.GetOutpostRequirementsQuery{
				ColonyName:  name,
				OutpostName: outpost,
			})
			if err != nil {
				return fmt.Errorf("failed to get requirements: %w", err)
			}

			displayRequirements(result.(*queries.GetOutpostRequirementsResponse))
			return nil
		},
	}

	cmd.Flags().StringVar(&outpost, "outpost", "", "Only show this outpost")

	return cmd
}

func displayRequirements(resp *queries.GetOutpostRequirementsResponse) {
	if len(resp.Requirements) == 0 {
		fmt.Println("No outposts registered")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OUTPOST\tSTATE\tHARVEST\tHAUL\tRESERVE\tDISMANTLE\tCORE ATTACK")
	fmt.Fprintln(w, "-------\t-----\t-------\t----\t-------\t---------\t-----------")

	for _, req := range resp.Requirements {
		state := "active"
		switch {
		case req.Abandoned:
			state = "abandoned"
		case req.Blocked:
			state = "blocked"
		}

		harvest := 0
		for _, n := range req.Nodes {
			harvest += n.Harvester
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			req.OutpostName, state, harvest, req.TotalHauler(),
			req.Reserver, req.Dismantler, req.CoreAttacker)
	}
	w.Flush()
}
