package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/kartoza/loudsync/internal/ffmpeg"
)

// Dependency represents a required external dependency
type Dependency struct {
	Name        string // Command name (e.g., "ffmpeg")
	Description string // Human-readable description
	Required    bool   // If true, the pipeline cannot run without it
	VersionArg  string // Optional: flag that prints the version (skipped when empty)
	InstallHint string // Optional: how to get it
}

// CheckResult contains the result of checking a dependency
type CheckResult struct {
	Dependency Dependency
	Available  bool
	Path       string // Path to the executable if found
	Version    string // First line of the version output if available
	Error      error  // Error if check failed
}

// RequiredDeps lists dependencies the pipeline cannot run without
var RequiredDeps = []Dependency{
	{
		Name:        "ffmpeg",
		Description: "Audio loudness measurement and processing",
		Required:    true,
		VersionArg:  "-version",
		InstallHint: "install ffmpeg from your package manager",
	},
	{
		Name:        "ffprobe",
		Description: "Audio metadata extraction",
		Required:    true,
		VersionArg:  "-version",
		InstallHint: "ffprobe ships with ffmpeg",
	},
}

// OptionalDeps lists optional dependencies that enhance functionality
var OptionalDeps = []Dependency{
	{
		Name:        "notify-send",
		Description: "Desktop notifications",
		Required:    false,
		VersionArg:  "--version",
		InstallHint: "install libnotify from your package manager",
	},
}

// Overrides maps dependency names to explicitly configured binary paths.
// An empty or missing entry falls back to PATH lookup.
type Overrides map[string]string

// Check verifies if a single dependency is available
func Check(dep Dependency, configured string) CheckResult {
	result := CheckResult{Dependency: dep}

	path, err := ffmpeg.Locate(dep.Name, configured)
	if err != nil {
		result.Available = false
		result.Error = err
		return result
	}

	result.Available = true
	result.Path = path
	if dep.VersionArg != "" {
		result.Version = probeVersion(path, dep.VersionArg)
	}
	return result
}

// CheckAll verifies all required and optional dependencies
func CheckAll(overrides Overrides) (required []CheckResult, optional []CheckResult) {
	for _, dep := range RequiredDeps {
		required = append(required, Check(dep, overrides[dep.Name]))
	}
	for _, dep := range OptionalDeps {
		optional = append(optional, Check(dep, overrides[dep.Name]))
	}
	return required, optional
}

// MissingRequired returns a list of missing required dependencies
func MissingRequired(overrides Overrides) []CheckResult {
	var missing []CheckResult
	for _, dep := range RequiredDeps {
		result := Check(dep, overrides[dep.Name])
		if !result.Available {
			missing = append(missing, result)
		}
	}
	return missing
}

// HasAllRequired returns true if all required dependencies are available
func HasAllRequired(overrides Overrides) bool {
	return len(MissingRequired(overrides)) == 0
}

// FormatMissing returns a formatted string of missing dependencies
func FormatMissing(results []CheckResult) string {
	if len(results) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Missing dependencies:\n\n")

	for _, r := range results {
		status := "MISSING"
		if r.Dependency.Required {
			status = "REQUIRED"
		}
		sb.WriteString(fmt.Sprintf("  • %s (%s)\n", r.Dependency.Name, status))
		sb.WriteString(fmt.Sprintf("    %s\n", r.Dependency.Description))
		if r.Dependency.InstallHint != "" {
			sb.WriteString(fmt.Sprintf("    Hint: %s\n", r.Dependency.InstallHint))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatAll returns a formatted string of all dependency check results
func FormatAll(required, optional []CheckResult) string {
	var sb strings.Builder

	sb.WriteString("Required dependencies:\n")
	for _, r := range required {
		status := "✓"
		if !r.Available {
			status = "✗"
		}
		sb.WriteString(fmt.Sprintf("  %s %s - %s\n", status, r.Dependency.Name, r.Dependency.Description))
		if r.Available {
			sb.WriteString(fmt.Sprintf("      Path: %s\n", r.Path))
			if r.Version != "" {
				sb.WriteString(fmt.Sprintf("      Version: %s\n", r.Version))
			}
		}
	}

	sb.WriteString("\nOptional dependencies:\n")
	for _, r := range optional {
		status := "✓"
		if !r.Available {
			status = "○"
		}
		sb.WriteString(fmt.Sprintf("  %s %s - %s\n", status, r.Dependency.Name, r.Dependency.Description))
		if r.Available {
			sb.WriteString(fmt.Sprintf("      Path: %s\n", r.Path))
		}
	}

	return sb.String()
}

// probeVersion runs the binary with its version flag and returns the
// first line of output.
func probeVersion(path, arg string) string {
	out, err := exec.Command(path, arg).Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line)
}
