package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	cl "clickship/internal/cli"
	"clickship/internal/config"
	"clickship/internal/game"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "clickship",
		Short:        "Click & Ship Tycoon terminal client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "API base URL")

	root.AddCommand(
		newBusinessCmd(&apiBase),
		newSelectCmd(&apiBase),
		newRenameCmd(&apiBase),
		newDeleteCmd(&apiBase),
		newDashCmd(&apiBase),
		newBuildCmd(&apiBase),
		newShipCmd(&apiBase),
		newOrdersCmd(&apiBase),
		newTechCmd(&apiBase),
		newLeaderboardCmd(&apiBase),
		newResetCmd(&apiBase),
		newSaveCmd(&apiBase),
		newWatchCmd(&apiBase),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func newBusinessCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "new [name] [product]",
		Short: "Start a new business",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name, product string
			var err error
			if len(args) > 0 {
				name = args[0]
			} else if name, err = promptRequired("Business name"); err != nil {
				return err
			}
			if len(args) > 1 {
				product = args[1]
			} else if product, err = promptRequired("Product type"); err != nil {
				return err
			}

			ctx, cancel := requestContext(cmd)
			defer cancel()
			st, err := newClient(apiBase).CreateBusiness(ctx, name, product)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Opened %s. Starting cash %s.", strings.TrimSpace(name), money(game.StartingMoney)))
			return renderDashboard(st)
		},
	}
}

func newSelectCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "select [business-id]",
		Short: "Switch to another business, or list them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			client := newClient(apiBase)
			if len(args) == 0 {
				st, err := client.State(ctx)
				if err != nil {
					return err
				}
				renderBusinesses(st)
				return nil
			}
			st, err := client.SelectBusiness(ctx, args[0])
			if err != nil {
				return err
			}
			return renderDashboard(st)
		},
	}
}

func newRenameCmd(apiBase *string) *cobra.Command {
	var product string
	cmd := &cobra.Command{
		Use:   "rename <business-id> [name]",
		Short: "Rename a business or change its product",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 1 {
				name = args[1]
			}
			if strings.TrimSpace(name) == "" && strings.TrimSpace(product) == "" {
				return fmt.Errorf("give a new name or --product")
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			st, err := newClient(apiBase).UpdateBusiness(ctx, args[0], name, product)
			if err != nil {
				return err
			}
			if b, ok := st.Business(args[0]); ok {
				printSuccess(fmt.Sprintf("Business is now %s (%s).", b.Name, b.ProductType))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&product, "product", "", "new product type")
	return cmd
}

func newDeleteCmd(apiBase *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <business-id>",
		Short: "Delete a business",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				answer, err := promptChoice("Delete business "+shortID(args[0])+"?", []string{"yes", "no"}, "no")
				if err != nil {
					return err
				}
				if answer != "yes" {
					printInfo("Delete cancelled.")
					return nil
				}
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			if _, err := newClient(apiBase).DeleteBusiness(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Business deleted.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newDashCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Show the current business",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			st, err := newClient(apiBase).State(ctx)
			if err != nil {
				return err
			}
			return renderDashboard(st)
		},
	}
}

func newBuildCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Start building a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			client := newClient(apiBase)
			before, err := client.State(ctx)
			if err != nil {
				return err
			}
			after, err := client.StartProduction(ctx)
			if err != nil {
				return err
			}
			if after.IsProducing && !before.IsProducing {
				printSuccess(fmt.Sprintf("Production started for %s.", money(game.ProductionCost)))
				return nil
			}
			printWarn(buildBlockedReason(after))
			return nil
		},
	}
}

func newShipCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ship",
		Short: "Ship the next pending order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			client := newClient(apiBase)
			before, err := client.State(ctx)
			if err != nil {
				return err
			}
			after, err := client.StartShipping(ctx)
			if err != nil {
				return err
			}
			if after.IsShipping && !before.IsShipping {
				printSuccess(fmt.Sprintf("Shipping order %s for %s.", shortID(after.CurrentShippingOrderID), money(after.ShippingCost)))
				return nil
			}
			printWarn(shipBlockedReason(after))
			return nil
		},
	}
}

func newOrdersCmd(apiBase *string) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			orders, err := newClient(apiBase).Orders(ctx, status)
			if err != nil {
				return err
			}
			renderOrders(orders, time.Now())
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending, in_progress, shipped, expired)")
	return cmd
}

func newTechCmd(apiBase *string) *cobra.Command {
	tech := &cobra.Command{
		Use:   "tech",
		Short: "Technology commands",
	}
	tech.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List technologies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			techs, err := newClient(apiBase).Technologies(ctx)
			if err != nil {
				return err
			}
			renderTechnologies(techs)
			return nil
		},
	})
	tech.AddCommand(&cobra.Command{
		Use:   "buy <tech-id>",
		Short: "Purchase a technology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			st, err := newClient(apiBase).PurchaseTechnology(ctx, args[0])
			if err != nil {
				return err
			}
			return reportTechnology(st, args[0], 1)
		},
	})
	tech.AddCommand(&cobra.Command{
		Use:   "upgrade <tech-id>",
		Short: "Upgrade a purchased technology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			client := newClient(apiBase)
			before, err := client.State(ctx)
			if err != nil {
				return err
			}
			prev, _ := before.Technology(args[0])
			st, err := client.UpgradeTechnology(ctx, args[0])
			if err != nil {
				return err
			}
			return reportTechnology(st, args[0], prev.Level+1)
		},
	})
	return tech
}

func reportTechnology(st game.State, id string, wantLevel int) error {
	t, ok := st.Technology(id)
	if !ok {
		return fmt.Errorf("technology %s not found", id)
	}
	if t.Purchased && t.Level >= wantLevel {
		printSuccess(fmt.Sprintf("%s is now %s (level %d).", t.Name, game.LevelName(t), t.Level))
		return nil
	}
	printWarn(fmt.Sprintf("%s unchanged. Check funds and purchase status.", t.Name))
	return nil
}

func newLeaderboardCmd(apiBase *string) *cobra.Command {
	lb := &cobra.Command{
		Use:   "leaderboard",
		Short: "Leaderboard commands",
	}
	for _, kind := range []struct {
		use, short, title string
	}{
		{use: "money", short: "Rank by total money earned", title: "Money Leaderboard"},
		{use: "shipping", short: "Rank by orders shipped", title: "Shipping Leaderboard"},
	} {
		lb.AddCommand(&cobra.Command{
			Use:   kind.use,
			Short: kind.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := requestContext(cmd)
				defer cancel()
				client := newClient(apiBase)
				if _, err := client.RefreshLeaderboard(ctx); err != nil {
					return err
				}
				entries, err := client.Leaderboard(ctx, kind.use)
				if err != nil {
					return err
				}
				renderLeaderboard(entries, kind.title)
				return nil
			},
		})
	}
	return lb
}

func newResetCmd(apiBase *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset progress, keeping businesses and the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				answer, err := promptChoice("Reset all progress?", []string{"yes", "no"}, "no")
				if err != nil {
					return err
				}
				if answer != "yes" {
					printInfo("Reset cancelled.")
					return nil
				}
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			if _, err := newClient(apiBase).Reset(ctx); err != nil {
				return err
			}
			printSuccess("Game reset.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newSaveCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Save a snapshot now",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()
			if err := newClient(apiBase).Save(ctx); err != nil {
				return err
			}
			printSuccess("Snapshot saved.")
			return nil
		},
	}
}

func newWatchCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream live game updates",
		RunE: func(cmd *cobra.Command, args []string) error {
			printInfo("Watching live updates. Ctrl+C to stop.")
			return newClient(apiBase).Watch(cmd.Context(), func(st game.State) {
				fmt.Println(statusLine(st))
			})
		},
	}
}
