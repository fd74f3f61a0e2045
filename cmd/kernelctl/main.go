// Command kernelctl is a local development harness for the colony kernel:
// it loads a YAML fixture snapshot, runs one tick against a fresh
// blackboard, and prints what happened. It is not the production host —
// a real host builds its own snapshot.Snapshot every tick and never shells
// out to this binary.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/fixture"
	"github.com/screeps-gpt/colonykernel/kernel"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("kernelctl")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "kernelctl",
		Short: "Run the colony tick kernel against a fixture snapshot",
	}

	root.PersistentFlags().Float64("safety-margin", 0.85, "CPU checkpoint threshold as a fraction of the CPU limit")
	root.PersistentFlags().Float64("max-cpu-per-unit", 1.5, "per-unit CPU delta warning threshold")
	_ = v.BindPFlag("safety_margin", root.PersistentFlags().Lookup("safety-margin"))
	_ = v.BindPFlag("max_cpu_per_unit", root.PersistentFlags().Lookup("max-cpu-per-unit"))

	root.AddCommand(newRunTickCmd(v))
	root.AddCommand(newDumpTelemetryCmd(v))
	return root
}

func buildKernel(v *viper.Viper) *kernel.Kernel {
	return kernel.Config{
		SafetyMargin:  v.GetFloat64("safety_margin"),
		MaxCPUPerUnit: v.GetFloat64("max_cpu_per_unit"),
		Logger:        slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}.Build()
}

func newRunTickCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "run-tick <fixture.yaml>",
		Short: "Run a single tick against the given fixture and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := fixture.Load(args[0])
			if err != nil {
				return fmt.Errorf("load fixture: %w", err)
			}
			bb := blackboard.New()
			sum := buildKernel(v).Run(snap, bb)
			printSummary(sum)
			return nil
		},
	}
}

func newDumpTelemetryCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "dump-telemetry <fixture.yaml>",
		Short: "Run a single tick and print the resulting telemetry as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := fixture.Load(args[0])
			if err != nil {
				return fmt.Errorf("load fixture: %w", err)
			}
			bb := blackboard.New()
			buildKernel(v).Run(snap, bb)
			printTelemetry(bb.Telemetry)
			return nil
		},
	}
}

func printSummary(sum kernel.Summary) {
	bold := color.New(color.Bold)
	bold.Println("tick summary")
	fmt.Printf("  correlation_id:  %s\n", sum.CorrelationID)
	fmt.Printf("  processed_units: %d\n", sum.ProcessedUnits)
	fmt.Printf("  spawned_units:   %d\n", len(sum.SpawnedUnits))
	fmt.Printf("  heal_count:      %d\n", sum.HealCount)

	if len(sum.Warnings) > 0 {
		color.New(color.FgYellow, color.Bold).Println("warnings:")
		for _, w := range sum.Warnings {
			color.Yellow("  - %s", w)
		}
	} else {
		color.Green("no warnings")
	}

	names := make([]string, 0, len(sum.TasksByUnit))
	for name := range sum.TasksByUnit {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"unit", "result"})
	for _, name := range names {
		t.AppendRow(table.Row{name, sum.TasksByUnit[name]})
	}
	t.Render()
}

func printTelemetry(tel blackboard.Telemetry) {
	fmt.Printf("tick %d  cpu %.2f/%.2f  bucket %.0f  heals %d\n",
		tel.Tick, tel.CPUUsed, tel.CPULimit, tel.Bucket, tel.Heals)

	roles := make([]string, 0, len(tel.RoleCounts))
	for r := range tel.RoleCounts {
		roles = append(roles, r)
	}
	sort.Strings(roles)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"role", "count", "queue total", "assigned", "available"})
	for _, r := range roles {
		stat := tel.TaskStats[r]
		t.AppendRow(table.Row{r, tel.RoleCounts[r], stat.Total, stat.Assigned, stat.Available})
	}
	t.Render()

	if len(tel.Spawns) > 0 {
		color.Cyan("spawned this tick: %v", tel.Spawns)
	}
}
