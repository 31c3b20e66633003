package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"clustercheck/internal/config"
	"clustercheck/internal/report"
	"clustercheck/internal/sanity"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Analysis flags, shared by both modes
	rcut         float64
	minNeighbors int

	// Directory-mode flags
	baseDir          string
	sortOutAnomalies bool

	// Logger
	logger *zap.Logger

	// Layered configuration, loaded before any command runs
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clustercheck",
	Short: "Structural sanity checks for Xenon cluster geometries",
	Long: `clustercheck analyzes the local environment around Xenon atoms in
cluster structures and flags anomalous ones based on coordination
number thresholds.

Two modes are available:
  scan  - analyze a directory of per-cluster XYZ files, optionally
          moving anomalous clusters to a bad_seeds folder
  traj  - analyze every snapshot of a multi-frame XYZ trajectory`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		zcfg := zap.NewProductionConfig()
		if verbose || cfg.Logging.Verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// scanCmd is the directory-mode entry point
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Analyze cluster folders under a base directory",
	Long: `Finds every cluster_*/coord_*ClusterAroundXeNew.xyz file under the
base directory, counts the neighbors of each Xenon atom within the
cutoff radius, and flags clusters where any Xenon atom has fewer than
the minimum neighbor count.

With --sort-out-anomalies, flagged cluster folders are moved into
<base-dir>/bad_seeds after all analyses finish. The move overwrites
any existing folder of the same name and cannot be undone.`,
	RunE: runScan,
}

// trajCmd is the trajectory-mode entry point
var trajCmd = &cobra.Command{
	Use:   "traj [trajectory.xyz]",
	Short: "Analyze every snapshot of a multi-frame XYZ trajectory",
	Long: `Reads a multi-frame XYZ file and applies the same Xenon coordination
analysis to every snapshot. Analysis only; no files are moved.`,
	Args: cobra.ExactArgs(1),
	RunE: runTraj,
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	fmt.Println("Cluster Sanity Check Analysis")
	fmt.Println("==================================================")
	fmt.Println("Parameters:")
	fmt.Printf("  - Base directory: %s\n", baseDir)
	fmt.Printf("  - Cutoff radius: %g Å\n", rcut)
	fmt.Printf("  - Minimum neighbors: %d\n", minNeighbors)
	fmt.Printf("  - Sort out anomalies: %v\n\n", sortOutAnomalies)

	fmt.Println("Searching for cluster files...")
	files, err := sanity.FindClusterFiles(baseDir)
	if err != nil {
		if errors.Is(err, sanity.ErrNoClusters) {
			return fmt.Errorf("no cluster files found in %s (expected pattern: %s)", baseDir, sanity.ClusterGlob)
		}
		return err
	}
	fmt.Printf("Found %d cluster files.\n\n", len(files))

	run := sanity.AnalyzeFiles(files, rcut, minNeighbors, logger, progress("Processing clusters"))
	fmt.Fprintln(os.Stderr)

	rd := report.NewRenderer("cluster")
	fmt.Println(rd.StatusTable(run))
	fmt.Println(rd.Summary(run))

	if sortOutAnomalies {
		moveAnomalous(run)
	}

	fmt.Println("\nAnalysis completed!")
	return nil
}

func runTraj(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	path := args[0]

	fmt.Println("Xenon Trajectory Analysis")
	fmt.Println("==================================================")
	fmt.Println("Parameters:")
	fmt.Printf("  - Trajectory file: %s\n", path)
	fmt.Printf("  - Cutoff radius: %g Å\n", rcut)
	fmt.Printf("  - Minimum neighbors: %d\n\n", minNeighbors)

	run, err := sanity.ScanTrajectory(path, rcut, minNeighbors, progress("Processing snapshots"))
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr)

	rd := report.NewRenderer("snapshot")
	fmt.Println(rd.StatusTable(run))
	fmt.Println(rd.Summary(run))

	fmt.Println("\nAnalysis completed!")
	return nil
}

// applyConfig layers the loaded config file and env overrides under any
// flags the user did not set explicitly, then validates.
func applyConfig(cmd *cobra.Command) error {
	if !cmd.Flags().Changed("rcut") {
		rcut = cfg.Rcut
	}
	if !cmd.Flags().Changed("num-atoms") {
		minNeighbors = cfg.MinNeighbors
	}
	if f := cmd.Flags().Lookup("base-dir"); f != nil && !f.Changed {
		baseDir = cfg.BaseDir
	}
	if rcut <= 0 {
		return fmt.Errorf("--rcut must be positive, got %g", rcut)
	}
	if minNeighbors < 0 {
		return fmt.Errorf("--num-atoms must be non-negative, got %d", minNeighbors)
	}
	return nil
}

func moveAnomalous(run *sanity.Run) {
	count := 0
	for _, res := range run.Results {
		if res.OK && res.Anomalous {
			count++
		}
	}
	if count == 0 {
		fmt.Println("\nNo anomalous clusters found to move.")
		return
	}

	fmt.Printf("\nMoving %d anomalous clusters to %s folder...\n", count, cfg.QuarantineDir)
	outcomes := sanity.MoveAnomalous(run, baseDir, cfg.QuarantineDir, logger)
	moved := 0
	for _, out := range outcomes {
		if out.OK {
			moved++
		} else {
			fmt.Printf("Warning: %s\n", out.Message)
		}
	}
	fmt.Printf("Successfully moved %d/%d anomalous clusters.\n", moved, len(outcomes))
}

// progress writes a single rewritten status line to stderr so it never
// interleaves with the report on stdout.
func progress(label string) sanity.ProgressFunc {
	return func(done, total int) {
		fmt.Fprintf(os.Stderr, "\r%s... %d/%d", label, done, total)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: .clustercheck.yaml if present)")

	// Shared analysis flags
	for _, cmd := range []*cobra.Command{scanCmd, trajCmd} {
		cmd.Flags().Float64Var(&rcut, "rcut", 6.0, "Cutoff radius for neighbor search in Angstroms")
		cmd.Flags().IntVar(&minNeighbors, "num-atoms", 10, "Clusters with any Xe atom having fewer than this many neighbors are anomalous")
	}

	// Directory-mode flags
	scanCmd.Flags().StringVar(&baseDir, "base-dir", ".", "Base directory containing cluster folders")
	scanCmd.Flags().BoolVar(&sortOutAnomalies, "sort-out-anomalies", false, "Move anomalous clusters to the bad_seeds folder")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(trajCmd)
}
