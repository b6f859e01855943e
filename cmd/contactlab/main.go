package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/contactlab/internal/config"
	"github.com/san-kum/contactlab/internal/probe"
	"github.com/san-kum/contactlab/internal/scene"
	"github.com/san-kum/contactlab/internal/storage"
	"github.com/san-kum/contactlab/internal/viewer"
)

var (
	dataDir     string
	datasetPath string
	sceneID     string
	configFile  string
	dt          float64
	margin      float64
	settleSteps int
	links       bool
	noSave      bool
)

// main is the entry point for the contactlab CLI; it registers commands
// and flags, and launches the interactive viewer when no subcommand is
// given. It exits the process with status 1 if command execution returns
// an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "contactlab",
		Short: "contact inspection and scene validation for physics scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, ds, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			return viewer.Run(ds, settings)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "scenes.yaml", "scene dataset file (yaml)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "settings file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&sceneID, "scene", "", "scene id to load")

	checkCmd := &cobra.Command{
		Use:   "check [scene]",
		Short: "run a contact check on one scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}
	checkCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "settle timestep")
	checkCmd.Flags().Float64Var(&margin, "margin", config.DefaultContactMargin, "contact detection margin")
	checkCmd.Flags().IntVar(&settleSteps, "settle", config.DefaultSettleSteps, "settle steps before checking")
	checkCmd.Flags().BoolVar(&links, "links", true, "include link ids in pair keys")
	checkCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the report")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the dataset for the first scene with contacts",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "settle timestep")
	sweepCmd.Flags().Float64Var(&margin, "margin", config.DefaultContactMargin, "contact detection margin")
	sweepCmd.Flags().IntVar(&settleSteps, "settle", config.DefaultSettleSteps, "settle steps before checking")
	sweepCmd.Flags().BoolVar(&links, "links", true, "include link ids in pair keys")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list dataset scenes",
		RunE:  listScenes,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored check runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-pair penetration depths of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(checkCmd, sweepCmd, scenesCmd, listCmd, plotCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSettings merges the optional settings file with command line flags
// and loads the dataset. An explicitly set flag wins over the settings
// file; an untouched flag only fills gaps.
func loadSettings(cmd *cobra.Command) (*config.Settings, *scene.Dataset, error) {
	settings := config.DefaultSettings()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, err
		}
		settings = loaded
	}

	flags := cmd.Root().PersistentFlags()
	settings.Dataset = pickPath(settings.Dataset, datasetPath, flags.Changed("dataset"))
	settings.DataDir = pickPath(settings.DataDir, dataDir, flags.Changed("data"))
	if sceneID != "" {
		settings.Scene = sceneID
	}

	ds, err := scene.LoadDataset(settings.Dataset)
	if err != nil {
		return nil, nil, err
	}
	return settings, ds, nil
}

// pickPath resolves one path setting between the settings file and a
// flag: an explicitly changed flag always wins, otherwise the flag value
// only covers an unset config entry.
func pickPath(fromConfig, fromFlag string, flagChanged bool) string {
	if flagChanged || fromConfig == "" {
		return fromFlag
	}
	return fromConfig
}

func checkOptions() probe.Options {
	return probe.Options{
		LinkResolution: links,
		SettleSteps:    settleSteps,
		Dt:             dt,
		Margin:         margin,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings, ds, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	id := settings.Scene
	if len(args) > 0 {
		id = args[0]
	}
	if id == "" {
		id = ds.Scenes[0].ID
	}

	sc, err := ds.SceneByID(id)
	if err != nil {
		return err
	}

	sim := sc.Build()
	for i := 0; i < settleSteps; i++ {
		if err := sim.StepWorld(dt); err != nil {
			return err
		}
	}

	report, err := probe.Check(sim, checkOptions())
	if err != nil {
		return err
	}
	report.SceneID = id

	fmt.Println(report.Format())

	if noSave {
		return nil
	}

	store := storage.New(settings.DataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(report)
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", runID)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	_, ds, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	scanner := probe.NewScanner(ds, checkOptions())
	report, err := scanner.Sweep(cmd.Context())
	if err != nil {
		return err
	}

	if !report.HasContacts() {
		fmt.Println("no scene produced active contact pairs")
		return nil
	}

	fmt.Println(report.Format())
	return nil
}

func listScenes(cmd *cobra.Command, args []string) error {
	_, ds, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tRIGID\tARTICULATED")
	for _, sc := range ds.Scenes {
		fmt.Fprintf(w, "%s\t%d\t%d\n", sc.ID, len(sc.RigidObjects), len(sc.ArticulatedObjects))
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSCENE\tPAIRS\tACTIVE\tMAX PEN\tTIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.4f\t%s\n",
			run.ID, run.Scene, run.PairCount, run.ActivePoints,
			run.MaxPenetration, run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	pairs, err := store.LoadPairs(args[0])
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		fmt.Println("no pairs in run")
		return nil
	}

	depths := make([]float64, len(pairs))
	for i, p := range pairs {
		depths[i] = -p.MaxDistance
	}

	graph := asciigraph.Plot(depths,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Caption("penetration depth per contact pair"))
	fmt.Println(graph)

	for i, p := range pairs {
		fmt.Printf("%3d  %s vs %s: %g\n", i, p.NameA, p.NameB, p.MaxDistance)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	pairs, err := store.LoadPairs(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Meta  *storage.RunMetadata `json:"metadata"`
		Pairs []storage.StoredPair `json:"pairs"`
	}{meta, pairs}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
