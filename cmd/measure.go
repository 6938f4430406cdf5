package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kartoza/loudsync/internal/config"
	"github.com/kartoza/loudsync/internal/discovery"
	"github.com/kartoza/loudsync/internal/export"
	"github.com/kartoza/loudsync/internal/logging"
	"github.com/kartoza/loudsync/internal/models"
	"github.com/kartoza/loudsync/internal/pipeline"
)

var (
	measureCSV    bool
	measureOutDir string
	measureRef    string
)

var measureCmd = &cobra.Command{
	Use:   "measure [files or directories...]",
	Short: "Measure integrated loudness, range, and true peak",
	Long: `Measure each file's integrated loudness (LUFS), loudness range (LU),
and true peak (dBTP) without modifying anything.

Results print as an aligned table; --csv also writes
loudness_measurement.csv into the output directory. With --ref the
reference file is measured first and its integrated loudness printed as
the comparison target.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		ctx, err := pipeline.NewRunContext(cfg, logging.Console(debugMode), false)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			args = []string{"."}
		}
		paths, err := discovery.ResolveInputs(args, nil)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no audio files found")
		}

		target := cfg.Target()
		if measureRef != "" {
			lufs, err := ctx.Processor.ReferenceLUFS(measureRef, target)
			if err != nil {
				return fmt.Errorf("reference measurement failed: %w", err)
			}
			fmt.Printf("Reference target: %.1f LUFS (%s)\n\n", lufs, filepath.Base(measureRef))
			target.IntegratedLUFS = lufs
		}

		table := logging.NewMeasurementTable()
		measurements := make([]models.LoudnessMeasurement, 0, len(paths))
		errored := 0
		for _, path := range paths {
			m := ctx.Processor.Measure(path, target)
			table.Add(m)
			measurements = append(measurements, m)
			if !m.OK() {
				errored++
			}
		}

		fmt.Print(table.String())

		if measureCSV {
			reportPath := filepath.Join(measureOutDir, export.CSVFileName)
			if err := export.WriteCSV(measurements, reportPath); err != nil {
				return err
			}
			fmt.Printf("\nReport written to %s\n", reportPath)
		}

		if errored > 0 {
			return fmt.Errorf("measurement failed for %d of %d files", errored, len(paths))
		}
		return nil
	},
}

func init() {
	measureCmd.Flags().BoolVar(&measureCSV, "csv", false, "Write a CSV report")
	measureCmd.Flags().StringVar(&measureOutDir, "output-dir", ".", "Directory for the CSV report")
	measureCmd.Flags().StringVar(&measureRef, "ref", "", "Reference file to print as the comparison target")

	rootCmd.AddCommand(measureCmd)
}
