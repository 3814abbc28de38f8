// Command menuopt is the operator CLI: it loads a menu items CSV file and
// runs menu selection or prints menu statistics without a running server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/menuopt/menu-optimizer/internal/models"
	"github.com/menuopt/menu-optimizer/internal/optimizer"
	"github.com/menuopt/menu-optimizer/internal/repository"
	"github.com/menuopt/menu-optimizer/internal/service"
)

// Exit codes for scripting
const (
	ExitSuccess    = 0
	ExitInfeasible = 1
	ExitInvalid    = 2
	ExitSolverFail = 3
)

func main() {
	app := &cli.App{
		Name:  "menuopt",
		Usage: "select the revenue-maximizing menu subset for a restaurant",
		Commands: []*cli.Command{
			optimizeCommand(),
			statsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitInvalid)
	}
}

func optimizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "optimize",
		Usage: "run one menu selection for a restaurant and budget",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "items", Usage: "path to menu items CSV file", Required: true},
			&cli.StringFlag{Name: "restaurant", Usage: "restaurant identifier", Required: true},
			&cli.Float64Flag{Name: "budget", Usage: "maximum total price of selected items", Required: true},
			&cli.IntFlag{Name: "min-per-category", Usage: "minimum selected items per category", Value: 1},
			&cli.DurationFlag{Name: "time-limit", Usage: "solve time limit (0 = none)"},
			&cli.BoolFlag{Name: "json", Usage: "print the result as JSON"},
		},
		Action: runOptimize,
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "print summary statistics for a restaurant's menu",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "items", Usage: "path to menu items CSV file", Required: true},
			&cli.StringFlag{Name: "restaurant", Usage: "restaurant identifier", Required: true},
			&cli.BoolFlag{Name: "json", Usage: "print the result as JSON"},
		},
		Action: runStats,
	}
}

func loadRepository(c *cli.Context) (repository.MenuItemRepository, error) {
	items, err := repository.NewLoader().LoadMenuItems(c.String("items"))
	if err != nil {
		return nil, cli.Exit(err.Error(), ExitInvalid)
	}
	return repository.NewInMemoryMenuItemRepository(items), nil
}

func runOptimize(c *cli.Context) error {
	repo, err := loadRepository(c)
	if err != nil {
		return err
	}

	opt := optimizer.New(optimizer.WithTimeLimit(c.Duration("time-limit")))
	svc := service.NewOptimizeService(repo, opt)

	req := models.OptimizationRequest{
		RestaurantID:        c.String("restaurant"),
		MaxBudget:           c.Float64("budget"),
		MinItemsPerCategory: c.Int("min-per-category"),
	}

	resp, err := svc.Optimize(context.Background(), req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownRestaurant) ||
			errors.Is(err, service.ErrInvalidBudget) ||
			errors.Is(err, service.ErrInvalidMinItems) {
			return cli.Exit(err.Error(), ExitInvalid)
		}
		return cli.Exit(fmt.Sprintf("solver failure: %v", err), ExitSolverFail)
	}

	if c.Bool("json") {
		printJSON(resp)
	} else {
		printResult(resp)
	}

	if !resp.Feasible {
		return cli.Exit("", ExitInfeasible)
	}
	return nil
}

func runStats(c *cli.Context) error {
	repo, err := loadRepository(c)
	if err != nil {
		return err
	}

	svc := service.NewMenuService(repo)
	stats, err := svc.Stats(context.Background(), c.String("restaurant"))
	if err != nil {
		return cli.Exit(err.Error(), ExitInvalid)
	}

	if c.Bool("json") {
		printJSON(stats)
		return nil
	}

	fmt.Printf("Restaurant %s\n", stats.RestaurantID)
	fmt.Printf("  Menu items:    %d\n", stats.TotalItems)
	fmt.Printf("  Average price: $%.2f\n", stats.AveragePrice)
	fmt.Println("  Categories:")
	for cat, count := range stats.Categories {
		if cat == "" {
			cat = "(uncategorized)"
		}
		fmt.Printf("    %-20s %d\n", cat, count)
	}
	return nil
}

func printResult(resp *models.OptimizationResponse) {
	fmt.Printf("Run %s for restaurant %s (budget $%.2f, min %d per category)\n",
		resp.RunID, resp.RestaurantID, resp.MaxBudget, resp.MinItemsPerCategory)

	if !resp.Feasible {
		fmt.Println(resp.Message)
		return
	}

	if resp.Suboptimal {
		fmt.Println("time limit reached: reporting the best selection found, which may not be optimal")
	}

	fmt.Printf("Selected %d items, total cost $%.2f, expected revenue $%.2f\n",
		resp.SelectedCount, resp.TotalCost, resp.ObjectiveValue)
	for _, it := range resp.SelectedItems {
		fmt.Printf("  %-24s %-14s $%7.2f  sells $%7.2f (%s)\n",
			it.Name, it.Category, it.Price, it.SellingPrice, it.Profitability)
	}
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
	}
}
