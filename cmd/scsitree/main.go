package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sigreer/scsitree/internal/config"
	"github.com/sigreer/scsitree/internal/logging"
	"github.com/sigreer/scsitree/internal/output"
	"github.com/sigreer/scsitree/internal/topology"
)

var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "scsitree",
	Short: "Print the SAS/SATA storage topology found in sysfs",
	Long: `scsitree walks the Linux sysfs SCSI and SAS transport classes and prints
the storage topology as a tree: HBAs, phys, ports, end devices, targets,
SCSI devices and their block devices, together with the machine's DMI
identity and a count of each category.

Attributes that cannot be read are reported as null. Diagnostics are
written to stderr.`,
	Example: "scsitree\n" +
		"scsitree --format yaml --layout nested\n" +
		"scsitree --expanders --workers 4 --log-level warning",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
	},
}

func init() {
	rootCmd.Flags().StringVar(&cfg.SysfsRoot, "root", cfg.SysfsRoot, "sysfs mount point")
	rootCmd.Flags().StringVarP(&cfg.Format, "format", "f", cfg.Format, "output format: json, yaml or table")
	rootCmd.Flags().StringVar(&cfg.Layout, "layout", cfg.Layout, "tree layout: flat or nested")
	rootCmd.Flags().BoolVar(&cfg.SortKeys, "sort-keys", cfg.SortKeys, "sort object keys alphabetically")
	rootCmd.Flags().BoolVar(&cfg.Expanders, "expanders", cfg.Expanders, "descend into SAS expanders")
	rootCmd.Flags().IntVarP(&cfg.Workers, "workers", "j", cfg.Workers, "number of subtrees walked in parallel")
	rootCmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "diagnostic level: debug, info, warning or error")

	rootCmd.AddCommand(versionCmd)
}

func run(stdout, stderr io.Writer, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, stderr)
	if err != nil {
		return err
	}
	log := logger.WithField("run", uuid.NewString())

	tree, err := topology.Discover(cfg.DiscoveryOptions(log))
	if tree == nil {
		return err
	}
	// A count mismatch still prints what was found
	if err != nil {
		log.WithError(err).Error("Topology counts are inconsistent")
	}

	format, _ := output.ParseFormat(cfg.Format)
	layout, _ := topology.ParseLayout(cfg.Layout)
	doc := tree.Document(topology.NewAssembler(layout, log), cfg.SortKeys)

	var printErr error
	switch format {
	case output.FormatYAML:
		printErr = output.PrintYAML(stdout, doc)
	case output.FormatTable:
		output.PrintTable(stdout, tree)
	default:
		printErr = output.PrintJSON(stdout, doc)
	}
	if printErr != nil {
		return fmt.Errorf("failed to write output: %w", printErr)
	}
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, topology.ErrCountMismatch) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
