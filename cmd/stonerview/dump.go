package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/stonerview/motion"
	"github.com/lixenwraith/stonerview/parameter"
	"github.com/lixenwraith/stonerview/render"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print frames without a terminal",
	Long: `Steps the animation headless and prints frames as text grids, or as JSON element records
with --json. Output is deterministic for a given preset and seed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		frames, _ := cmd.Flags().GetInt("frames")
		every, _ := cmd.Flags().GetInt("every")
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		asJSON, _ := cmd.Flags().GetBool("json")

		sc, err := loadScene(s)
		if err != nil {
			return err
		}
		opts := dumpOptions{frames: frames, every: every, width: width, height: height, json: asJSON}
		return dump(cmd.OutOrStdout(), sc, s, opts)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().IntP("frames", "n", parameter.DefaultDumpFrames, "Number of frames to print")
	dumpCmd.Flags().Int("every", 1, "Print every k-th frame")
	dumpCmd.Flags().Int("width", parameter.DefaultDumpWidth, "Text grid width")
	dumpCmd.Flags().Int("height", parameter.DefaultDumpHeight, "Text grid height")
	dumpCmd.Flags().Bool("json", false, "Print one JSON object per frame instead of a text grid")
	dumpCmd.Flags().Float64("transparency", 0, "Element alpha in [0,1]")
	dumpCmd.Flags().Bool("wireframe", false, "Draw outline glyphs only")
	dumpCmd.Flags().Bool("edges", false, "Shade the cell behind each element")
	dumpCmd.Flags().String("shape", "", "Force one shape or random")
}

type dumpOptions struct {
	frames, every int
	width, height int
	json          bool
}

// frameRecord is the JSON form of one frame
type frameRecord struct {
	Tick   uint64        `json:"tick"`
	Preset string        `json:"preset"`
	Elems  []motion.Elem `json:"elems"`
}

// dump prints the creation tick and then the requested frames
func dump(w io.Writer, sc *scene, s settings, o dumpOptions) error {
	if o.frames < 0 || o.every <= 0 {
		return fmt.Errorf("frames must be non-negative and every positive")
	}
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("grid %dx%d must be positive", o.width, o.height)
	}

	grid := newGridScreen(o.width, o.height)
	opts := s.prefs.RenderOptions()
	opts.ShowStatus = false
	r := render.NewTerminalRenderer(grid, render.DefaultCamera(), opts)
	enc := json.NewEncoder(w)

	emit := func() error {
		if o.json {
			return enc.Encode(frameRecord{Tick: sc.mover.Tick(), Preset: sc.preset.Name, Elems: sc.mover.Elems()})
		}
		r.RenderFrame(sc.mover.Elems(), render.Status{})
		_, err := fmt.Fprintf(w, "--- %s tick %d ---\n%s", sc.preset.Name, sc.mover.Tick(), grid.String())
		return err
	}

	for printed := 0; printed < o.frames; printed++ {
		if err := emit(); err != nil {
			return err
		}
		for i := 0; i < o.every; i++ {
			if err := sc.mover.Step(); err != nil {
				return err
			}
		}
	}
	return nil
}

// gridScreen is a render.Screen backed by a rune grid
type gridScreen struct {
	width, height int
	cells         []rune
}

func newGridScreen(w, h int) *gridScreen {
	g := &gridScreen{width: w, height: h, cells: make([]rune, w*h)}
	g.Clear()
	return g
}

func (g *gridScreen) Size() (int, int) { return g.width, g.height }
func (g *gridScreen) Show()            {}

func (g *gridScreen) Clear() {
	for i := range g.cells {
		g.cells[i] = ' '
	}
}

func (g *gridScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.cells[y*g.width+x] = primary
}

// String returns the grid with trailing spaces trimmed, one line per row
func (g *gridScreen) String() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		row := string(g.cells[y*g.width : (y+1)*g.width])
		sb.WriteString(strings.TrimRight(row, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
