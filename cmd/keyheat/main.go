package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/keyheat/internal/analysis"
	"github.com/san-kum/keyheat/internal/audio"
	"github.com/san-kum/keyheat/internal/config"
	"github.com/san-kum/keyheat/internal/gui"
	"github.com/san-kum/keyheat/internal/heat"
	"github.com/san-kum/keyheat/internal/input"
	"github.com/san-kum/keyheat/internal/layout"
	"github.com/san-kum/keyheat/internal/session"
	"github.com/san-kum/keyheat/internal/storage"
	"github.com/san-kum/keyheat/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	configFile  string
	granularity int
	sigmaScale  float64
	theme       string
	output      string
	fps         int
	windowW     int
	windowH     int
	sound       bool
)

// main registers the keyheat commands and executes the root command. The
// root command itself runs a capture session against a layout file; it exits
// with status 1 if execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "keyheat [layout.xml]",
		Short: "typing heat map from a keyboard layout",
		Args:  cobra.ExactArgs(1),
		RunE:  runSession,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.Flags().IntVar(&granularity, "granularity", config.DefaultGranularity, "heat cells per key unit")
	rootCmd.Flags().Float64Var(&sigmaScale, "sigma", config.DefaultSigmaScale, "kernel width as fraction of home-row pitch")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "heat colormap")
	rootCmd.Flags().StringVar(&output, "output", config.DefaultOutput, "output image path")
	rootCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	rootCmd.Flags().IntVar(&windowW, "width", config.DefaultWidth, "window width")
	rootCmd.Flags().IntVar(&windowH, "height", config.DefaultHeight, "window height")
	rootCmd.Flags().BoolVar(&sound, "sound", false, "key click sounds")

	validateCmd := &cobra.Command{
		Use:   "validate [layout.xml]",
		Short: "check a layout file and print its keymap",
		Args:  cobra.ExactArgs(1),
		RunE:  validateLayout,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [layout.xml]",
		Short: "browse a layout in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			km, err := loadKeymap(args[0])
			if err != nil {
				return err
			}
			return tui.Run(km)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved sessions",
		RunE:  listSessions,
	}

	statsCmd := &cobra.Command{
		Use:   "stats [session_id]",
		Short: "per-key statistics for a session",
		Args:  cobra.ExactArgs(1),
		RunE:  sessionStats,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [session_id]",
		Short: "typing cadence analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeSession,
	}

	exportCmd := &cobra.Command{
		Use:   "export [session_id]",
		Short: "export session metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSession,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list heat colormaps",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range heat.Names() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(validateCmd, inspectCmd, listCmd, statsCmd, analyzeCmd, exportCmd, themesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadKeymap(path string) (*layout.Keymap, error) {
	doc, err := layout.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return layout.Build(doc)
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	// CLI flags override config
	if !cmd.Flags().Changed("granularity") {
		granularity = cfg.Granularity
	}
	if !cmd.Flags().Changed("sigma") {
		sigmaScale = cfg.SigmaScale
	}
	if !cmd.Flags().Changed("theme") {
		theme = cfg.Theme
	}
	if !cmd.Flags().Changed("output") {
		output = cfg.Output
	}
	if !cmd.Flags().Changed("fps") {
		fps = cfg.FPS
	}
	if !cmd.Flags().Changed("width") {
		windowW = cfg.Window.Width
	}
	if !cmd.Flags().Changed("height") {
		windowH = cfg.Window.Height
	}
	if !cmd.Flags().Changed("sound") {
		sound = cfg.Sound
	}
	if !cmd.Flags().Changed("data") {
		dataDir = cfg.DataDir
	}

	km, err := loadKeymap(args[0])
	if err != nil {
		return err
	}

	cmap, err := heat.ByName(theme)
	if err != nil {
		return err
	}

	sigma := sigmaScale * km.HomePitch()
	field := heat.NewField(km, granularity, sigma)
	rec := session.NewRecorder(km)

	var synth *audio.Synth
	if sound {
		synth = audio.NewSynth()
		if err := synth.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "sound disabled: %v\n", err)
			synth = nil
		} else {
			defer synth.Stop()
		}
	}

	app, err := gui.NewApp(km, field, cmap, rec, synth, gui.Options{
		Width:  windowW,
		Height: windowH,
		FPS:    fps,
		Output: output,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	reader, err := input.NewReader(os.Stdin)
	if err != nil {
		return err
	}
	restoreTerminal := func() {
		if err := reader.Restore(); err != nil {
			fmt.Fprintf(os.Stderr, "terminal not restored: %v\n", err)
		}
	}
	defer restoreTerminal()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, reader.Chars(ctx)); err != nil {
		return err
	}

	restoreTerminal()
	fmt.Println()

	if err := app.Close(); err != nil {
		return err
	}

	fmt.Printf("keystrokes: %d\n", rec.Total())
	fmt.Printf("travel distance: %.2f key units\n", rec.Distance())
	fmt.Printf("heat map: %s\n", output)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "session not saved: %v\n", err)
		return nil
	}
	id, err := st.Save(storage.SessionMetadata{
		Layout:     km.Name,
		Timestamp:  time.Now(),
		Keystrokes: rec.Total(),
		Distance:   rec.Distance(),
		Sigma:      sigma,
		Theme:      theme,
		Output:     output,
	}, rec.Counts(), rec.Intervals())
	if err != nil {
		fmt.Fprintf(os.Stderr, "session not saved: %v\n", err)
		return nil
	}
	fmt.Printf("session id: %s\n", id)

	return nil
}

func validateLayout(cmd *cobra.Command, args []string) error {
	km, err := loadKeymap(args[0])
	if err != nil {
		return err
	}

	x0, y0, x1, y1 := km.Bounds()
	fmt.Printf("layout: %s\n", km.Name)
	fmt.Printf("keys: %d\n", len(km.Positions()))
	fmt.Printf("home row: %d keys\n", len(km.HomeRow()))
	fmt.Printf("home pitch: %.3f key units\n", km.HomePitch())
	fmt.Printf("bounds: (%.1f, %.1f) to (%.1f, %.1f)\n\n", x0, y0, x1, y1)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tUPPER\tROW\tX\tY\tWIDTH")
	for _, k := range km.Positions() {
		upper := k.Upper
		if upper == "" {
			upper = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.1f\t%.1f\n",
			k.Lower, upper, k.Row, k.X, k.Y, k.Width)
	}
	return w.Flush()
}

func listSessions(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	sessions, err := st.List()
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("no sessions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLAYOUT\tTIME\tKEYSTROKES\tDISTANCE\tTHEME")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1f\t%s\n",
			s.ID,
			s.Layout,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Keystrokes,
			s.Distance,
			s.Theme,
		)
	}
	return w.Flush()
}

func sessionStats(cmd *cobra.Command, args []string) error {
	sessionID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(sessionID)
	if err != nil {
		return err
	}

	counts, err := st.LoadCounts(sessionID)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("session: %s\n", meta.ID)
	fmt.Printf("layout: %s\n", meta.Layout)
	fmt.Printf("keystrokes: %d\n\n", meta.Keystrokes)

	type keyCount struct {
		key   string
		count int
	}
	sorted := make([]keyCount, 0, len(counts))
	total := 0
	for k, c := range counts {
		sorted = append(sorted, keyCount{k, c})
		total += c
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].key < sorted[j].key
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tCOUNT\tSHARE")
	top := sorted
	if len(top) > 15 {
		top = top[:15]
	}
	for _, kc := range top {
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", kc.key, kc.count, 100*float64(kc.count)/float64(total))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	data := make([]float64, len(sorted))
	for i, kc := range sorted {
		data[i] = float64(kc.count)
	}
	fmt.Println()
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("presses per key (sorted)"),
	)
	fmt.Println(graph)

	return nil
}

func analyzeSession(cmd *cobra.Command, args []string) error {
	sessionID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(sessionID)
	if err != nil {
		return err
	}

	intervals, err := st.LoadIntervals(sessionID)
	if err != nil {
		return err
	}
	if len(intervals) < 2 {
		return fmt.Errorf("not enough keystrokes to analyze")
	}

	fmt.Printf("cadence analysis: %s\n", meta.ID)
	fmt.Printf("layout: %s\n\n", meta.Layout)

	graph := asciigraph.Plot(intervals,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("inter-key interval (s)"),
	)
	fmt.Println(graph)
	fmt.Println()

	ps := analysis.CadenceSpectrum(intervals)
	if len(ps) > 1 {
		plotData := ps[1:]
		if len(plotData) > 80 {
			plotData = plotData[:80]
		}
		graph = asciigraph.Plot(plotData,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("cadence power spectrum"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	fmt.Printf("mean interval: %.3f s\n", analysis.MeanInterval(intervals))
	fmt.Printf("interval stddev: %.3f s\n", analysis.StdDevInterval(intervals))
	fmt.Printf("typing speed: %.1f wpm\n", analysis.WordsPerMinute(intervals))
	if cycle := analysis.DominantCycle(ps); cycle > 0 {
		fmt.Printf("dominant rhythm cycle: %.1f keystrokes\n", cycle)
	}

	return nil
}

func exportSession(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
