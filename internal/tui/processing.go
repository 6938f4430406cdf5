package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProcessingStep represents a single pipeline stage in the step list
type ProcessingStep struct {
	Name      string
	Status    StepStatus
	Detail    string // current file, e.g. "3/7 intro.wav"
	StartTime time.Time
	EndTime   time.Time
}

// StepStatus represents the status of a processing step
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepComplete
	StepFailed
	StepSkipped
)

// ProcessingState holds the state of all processing steps
type ProcessingState struct {
	Steps        []ProcessingStep
	CurrentStep  int
	IsProcessing bool
	StartTime    time.Time
	Error        error
}

// NewProcessingState creates a new processing state with the pipeline stages
func NewProcessingState() *ProcessingState {
	return &ProcessingState{
		Steps: []ProcessingStep{
			{Name: "Normalizing loudness", Status: StepPending},
			{Name: "Applying fade envelopes", Status: StepPending},
			{Name: "Assembling final track", Status: StepPending},
		},
		CurrentStep:  -1,
		IsProcessing: false,
	}
}

// SetStepByIndex directly sets a step's status by index
func (p *ProcessingState) SetStepByIndex(index int, status StepStatus) {
	if index >= 0 && index < len(p.Steps) {
		if status == StepRunning {
			if p.Steps[index].Status != StepRunning {
				p.Steps[index].StartTime = time.Now()
			}
			p.CurrentStep = index
		} else if status == StepComplete || status == StepSkipped || status == StepFailed {
			p.Steps[index].EndTime = time.Now()
			p.Steps[index].Detail = ""
		}
		p.Steps[index].Status = status
	}
}

// SetStepDetail updates the in-progress annotation for a step
func (p *ProcessingState) SetStepDetail(index int, detail string) {
	if index >= 0 && index < len(p.Steps) {
		p.Steps[index].Detail = detail
	}
}

// Start begins the processing
func (p *ProcessingState) Start() {
	p.IsProcessing = true
	p.StartTime = time.Now()
	p.CurrentStep = -1
}

// FailStep marks current step as failed
func (p *ProcessingState) FailStep(err error) {
	if p.CurrentStep >= 0 && p.CurrentStep < len(p.Steps) {
		p.Steps[p.CurrentStep].Status = StepFailed
		p.Steps[p.CurrentStep].EndTime = time.Now()
	}
	p.Error = err
	p.IsProcessing = false
}

// Complete marks processing as complete
func (p *ProcessingState) Complete() {
	if p.CurrentStep >= 0 && p.CurrentStep < len(p.Steps) {
		if p.Steps[p.CurrentStep].Status == StepRunning {
			p.Steps[p.CurrentStep].Status = StepComplete
			p.Steps[p.CurrentStep].EndTime = time.Now()
		}
	}
	p.IsProcessing = false
}

// Reset resets the processing state
func (p *ProcessingState) Reset() {
	for i := range p.Steps {
		p.Steps[i].Status = StepPending
		p.Steps[i].Detail = ""
		p.Steps[i].StartTime = time.Time{}
		p.Steps[i].EndTime = time.Time{}
	}
	p.CurrentStep = -1
	p.IsProcessing = false
	p.Error = nil
}

// processingTickMsg drives the step animation
type processingTickMsg struct{}

// processingTickCmd returns a command that ticks the processing animation
func processingTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return processingTickMsg{}
	})
}

// Donut animation frames (Unicode block characters for spinning effect)
var donutFrames = []string{
	"◐", "◓", "◑", "◒",
}

// RenderProcessingView renders the running-pipeline screen with donut
// indicators. progressLine carries the per-file progress bar, empty when
// no file-level progress applies.
func RenderProcessingView(state *ProcessingState, width, height, frame int, progressLine string) string {
	if state == nil {
		return ""
	}

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorOrange).
		MarginBottom(1)

	title := titleStyle.Render("Processing Audio...")

	// Elapsed time
	elapsed := time.Since(state.StartTime).Round(time.Second)
	timeStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)
	elapsedStr := timeStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed))

	// Build step list
	var steps []string
	for i, step := range state.Steps {
		line := renderStepLine(step, i == state.CurrentStep, frame)
		steps = append(steps, line)
	}
	stepsContent := strings.Join(steps, "\n")

	// Status message
	var statusMsg string
	statusStyle := lipgloss.NewStyle().
		MarginTop(1).
		Foreground(ColorGray)

	if state.Error != nil {
		statusStyle = statusStyle.Foreground(ColorRed)
		statusMsg = statusStyle.Render(fmt.Sprintf("Error: %v", state.Error))
	} else if !state.IsProcessing {
		statusStyle = statusStyle.Foreground(ColorGreen)
		statusMsg = statusStyle.Render("Processing complete!")
	} else {
		statusMsg = statusStyle.Render("Please wait...")
	}

	// Hint
	hintStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		MarginTop(2)
	hint := hintStyle.Render("q - quit (abandons the run)")

	sections := []string{
		"",
		title,
		elapsedStr,
		"",
		stepsContent,
	}
	if progressLine != "" {
		sections = append(sections, "", progressLine)
	}
	sections = append(sections, "", statusMsg, hint)

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)

	// Center on screen
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderStepLine renders a single processing step with appropriate indicator
func renderStepLine(step ProcessingStep, isCurrent bool, frame int) string {
	var indicator string
	var nameStyle lipgloss.Style

	switch step.Status {
	case StepPending:
		indicator = lipgloss.NewStyle().Foreground(ColorGray).Render("○")
		nameStyle = lipgloss.NewStyle().Foreground(ColorGray)

	case StepRunning:
		// Animated donut
		donutStyle := lipgloss.NewStyle().Foreground(ColorOrange).Bold(true)
		indicator = donutStyle.Render(donutFrames[frame%len(donutFrames)])
		nameStyle = lipgloss.NewStyle().Foreground(ColorWhite).Bold(true)

	case StepComplete:
		indicator = lipgloss.NewStyle().Foreground(ColorGreen).Render("●")
		nameStyle = lipgloss.NewStyle().Foreground(ColorGreen)

	case StepFailed:
		indicator = lipgloss.NewStyle().Foreground(ColorRed).Render("✗")
		nameStyle = lipgloss.NewStyle().Foreground(ColorRed)

	case StepSkipped:
		indicator = lipgloss.NewStyle().Foreground(ColorGray).Render("○")
		nameStyle = lipgloss.NewStyle().Foreground(ColorGray).Strikethrough(true)
	}

	// Current file for the running step
	var detail string
	if step.Status == StepRunning && step.Detail != "" {
		detailStyle := lipgloss.NewStyle().Foreground(ColorGray)
		detail = detailStyle.Render(fmt.Sprintf("  %s", step.Detail))
	}

	// Duration for completed steps
	var duration string
	if step.Status == StepComplete || step.Status == StepFailed {
		d := step.EndTime.Sub(step.StartTime).Round(100 * time.Millisecond)
		durationStyle := lipgloss.NewStyle().Foreground(ColorGray).Italic(true)
		duration = durationStyle.Render(fmt.Sprintf(" (%s)", d))
	}

	return fmt.Sprintf("  %s %s%s%s", indicator, nameStyle.Render(step.Name), detail, duration)
}
