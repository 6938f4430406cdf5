package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kartoza/loudsync/internal/config"
	"github.com/kartoza/loudsync/internal/deps"
)

var depsJSON bool

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Check for required dependencies",
	Long:  `Check if all required external programs are installed and available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		overrides := deps.Overrides{
			"ffmpeg":  cfg.Paths.FFmpeg,
			"ffprobe": cfg.Paths.FFprobe,
		}
		required, optional := deps.CheckAll(overrides)

		if depsJSON {
			return printDepsJSON(required, optional)
		}

		// Colors
		green := lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
		red := lipgloss.NewStyle().Foreground(lipgloss.Color("#E95420"))
		gray := lipgloss.NewStyle().Foreground(lipgloss.Color("#9A9EA0"))
		bold := lipgloss.NewStyle().Bold(true)

		fmt.Println()
		fmt.Println(bold.Render("Required Dependencies:"))
		fmt.Println()

		allRequiredOk := true
		for _, r := range required {
			var status string
			if r.Available {
				status = green.Render("✓")
			} else {
				status = red.Render("✗")
				allRequiredOk = false
			}
			fmt.Printf("  %s %s\n", status, bold.Render(r.Dependency.Name))
			fmt.Printf("    %s\n", gray.Render(r.Dependency.Description))
			if r.Available {
				fmt.Printf("    Path: %s\n", r.Path)
				if r.Version != "" {
					fmt.Printf("    Version: %s\n", r.Version)
				}
			} else if r.Dependency.InstallHint != "" {
				fmt.Printf("    Hint: %s\n", gray.Render(r.Dependency.InstallHint))
			}
			fmt.Println()
		}

		fmt.Println(bold.Render("Optional Dependencies:"))
		fmt.Println()

		for _, r := range optional {
			var status string
			if r.Available {
				status = green.Render("✓")
			} else {
				status = gray.Render("○")
			}
			fmt.Printf("  %s %s\n", status, bold.Render(r.Dependency.Name))
			fmt.Printf("    %s\n", gray.Render(r.Dependency.Description))
			if r.Available {
				fmt.Printf("    Path: %s\n", r.Path)
			}
			fmt.Println()
		}

		if allRequiredOk {
			fmt.Println(green.Render("All required dependencies are installed!"))
		} else {
			fmt.Println(red.Render("Some required dependencies are missing."))
			fmt.Println("Please install them before running the pipeline.")
		}
		fmt.Println()
		return nil
	},
}

// depReport is the JSON shape for one dependency check
type depReport struct {
	Name      string `json:"name"`
	Required  bool   `json:"required"`
	Available bool   `json:"available"`
	Path      string `json:"path,omitempty"`
	Version   string `json:"version,omitempty"`
}

func printDepsJSON(required, optional []deps.CheckResult) error {
	reports := make([]depReport, 0, len(required)+len(optional))
	for _, r := range append(required, optional...) {
		reports = append(reports, depReport{
			Name:      r.Dependency.Name,
			Required:  r.Dependency.Required,
			Available: r.Available,
			Path:      r.Path,
			Version:   r.Version,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func init() {
	depsCmd.Flags().BoolVar(&depsJSON, "json", false, "Print results as JSON")

	rootCmd.AddCommand(depsCmd)
}
