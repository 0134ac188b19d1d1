package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/stonerview/motion"
	"github.com/lixenwraith/stonerview/preset"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the oscillator graph of a preset",
	Long: `Builds the selected preset and prints every oscillator in creation order with its
parameters, static range and inputs, followed by the attribute bindings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list"); list {
			return listPresets(cmd.OutOrStdout())
		}
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		sc, err := loadScene(s)
		if err != nil {
			return err
		}
		return printGraph(cmd.OutOrStdout(), sc)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().BoolP("list", "l", false, "List the bundled presets")
}

func listPresets(w io.Writer) error {
	for _, name := range preset.Names() {
		p, err := preset.Builtin(name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-8s %s\n", name, p.Description); err != nil {
			return err
		}
	}
	return nil
}

func printGraph(w io.Writer, sc *scene) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "preset %s (seed %d, %d oscillators: %s)\n", sc.preset.Name, sc.seed, sc.ctx.Len(), kindSummary(sc.ctx))

	width := 0
	for _, name := range sc.labels {
		width = max(width, len(name))
	}
	for _, o := range sc.ctx.Nodes() {
		line, err := sc.ctx.Describe(o)
		if err != nil {
			return err
		}
		fmt.Fprintf(&sb, "  %-*s %s\n", width, sc.labels[o], line)
	}

	g := sc.mover.Graph()
	for _, a := range motion.Attributes {
		root, _ := g.Root(a)
		fmt.Fprintf(&sb, "%s <- %s %v\n", a, sc.labels[root], root)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// presetList joins the bundled names for help text
func presetList() string {
	return strings.Join(preset.Names(), ", ")
}
