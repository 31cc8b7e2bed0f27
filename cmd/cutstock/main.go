// Command cutstock solves a 2D guillotine cutting-stock problem from the
// command line and prints the resulting sheet layout.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rlundgren/cutstock/internal/config"
	"github.com/rlundgren/cutstock/internal/engine"
	"github.com/rlundgren/cutstock/internal/model"
)

// cutList accumulates repeated -cuts flags into a demand list.
type cutList struct {
	demands []model.Demand
}

func (c *cutList) String() string {
	var parts []string
	for _, d := range c.demands {
		parts = append(parts, fmt.Sprintf("%dx%d:%d", d.W, d.H, d.Qty))
	}
	return strings.Join(parts, ",")
}

func (c *cutList) Set(value string) error {
	d, err := parseCut(value)
	if err != nil {
		return err
	}
	c.demands = append(c.demands, d)
	return nil
}

func parseDims(value string) (int, int, error) {
	w, h, ok := strings.Cut(value, "x")
	if !ok {
		return 0, 0, fmt.Errorf("expected WxH, got %q", value)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", value, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", value, err)
	}
	return width, height, nil
}

func parseCut(value string) (model.Demand, error) {
	dims, qtyStr, ok := strings.Cut(value, ":")
	if !ok {
		return model.Demand{}, fmt.Errorf("expected WxH:qty, got %q", value)
	}
	w, h, err := parseDims(dims)
	if err != nil {
		return model.Demand{}, err
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.Demand{}, fmt.Errorf("invalid quantity in %q: %w", value, err)
	}
	return model.NewDemand(w, h, qty), nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "cutstock:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("cutstock", flag.ContinueOnError)
	stock := fs.String("stock", "", "stock panel size, WxH (falls back to saved defaults)")
	kerf := fs.Int("kerf", 0, "saw kerf width (falls back to saved defaults)")
	noRotate := fs.Bool("no-rotate", false, "disallow rotating pieces (falls back to saved defaults)")
	configPath := fs.String("config", config.DefaultConfigPath(), "path to the saved defaults file")
	saveDefaults := fs.Bool("save-defaults", false, "save the resolved stock, kerf, and rotation setting as future defaults")
	var cuts cutList
	fs.Var(&cuts, "cuts", "demanded piece WxH:qty (repeatable)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	defaults, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading defaults: %w", err)
	}

	stockW, stockH := defaults.StockW, defaults.StockH
	if explicit["stock"] {
		stockW, stockH, err = parseDims(*stock)
		if err != nil {
			return fmt.Errorf("--stock: %w", err)
		}
	}

	resolvedKerf := defaults.Kerf
	if explicit["kerf"] {
		resolvedKerf = *kerf
	}

	allowRotation := defaults.AllowRotation
	if explicit["no-rotate"] {
		allowRotation = !*noRotate
	}

	if *saveDefaults {
		toSave := config.Defaults{StockW: stockW, StockH: stockH, Kerf: resolvedKerf, AllowRotation: allowRotation}
		if err := config.Save(*configPath, toSave); err != nil {
			return fmt.Errorf("saving defaults: %w", err)
		}
	}

	sol, err := engine.Solve(stockW, stockH, cuts.demands, resolvedKerf, allowRotation)
	if err != nil {
		return err
	}

	printSolution(out, sol)
	return nil
}

func printSolution(out io.Writer, sol model.Solution) {
	for _, sheet := range sol.Sheets {
		for _, p := range sheet.Placements {
			rotated := ""
			if p.Rotated {
				rotated = " [rotated]"
			}
			fmt.Fprintf(out, "  %dx%d @ (%d, %d)%s\n", p.W, p.H, p.X, p.Y, rotated)
		}
	}

	sheetWord := "sheets"
	if sol.SheetCount() == 1 {
		sheetWord = "sheet"
	}
	fmt.Fprintf(out, "Summary: %d %s used, %s%% waste\n", sol.SheetCount(), sheetWord, round1(sol.WastePercent))
}

func round1(v float64) string {
	return strconv.FormatFloat(roundTo(v, 1), 'f', 1, 64)
}

func roundTo(v float64, decimals int) float64 {
	scale := 1.0
	for i := 0; i < decimals; i++ {
		scale *= 10
	}
	if v >= 0 {
		return float64(int64(v*scale+0.5)) / scale
	}
	return float64(int64(v*scale-0.5)) / scale
}
