package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kartoza/loudsync/internal/config"
	"github.com/kartoza/loudsync/internal/models"
	"github.com/kartoza/loudsync/internal/notify"
	"github.com/kartoza/loudsync/internal/pipeline"
)

// Application states
type runState int

const (
	stateReady runState = iota
	stateRunning
	stateDone
	stateFailed
)

// Key bindings
type keyMap struct {
	Start key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Start: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space/enter", "start run"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Messages
type progressMsg pipeline.ProgressUpdate
type runDoneMsg struct{ err error }

// Model is the pipeline TUI model
type Model struct {
	ctx      *pipeline.RunContext
	cfg      *config.Config
	inputs   []models.AudioAsset
	output   string
	noNotify bool

	state      runState
	processing *ProcessingState
	frame      int
	spinner    spinner.Model
	bar        progress.Model
	percent    float64
	fileFailed int
	runErr     error
	elapsed    time.Duration

	width  int
	height int

	updates chan pipeline.ProgressUpdate
	done    chan error
}

// NewModel creates a TUI model for one pipeline run
func NewModel(ctx *pipeline.RunContext, cfg *config.Config, inputs []models.AudioAsset, output string, noNotify bool) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorOrange)

	return Model{
		ctx:        ctx,
		cfg:        cfg,
		inputs:     inputs,
		output:     output,
		noNotify:   noNotify,
		state:      stateReady,
		processing: NewProcessingState(),
		spinner:    s,
		bar:        progress.New(progress.WithDefaultGradient()),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case stateReady:
			switch {
			case key.Matches(msg, keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, keys.Start):
				return m.startRun()
			}

		case stateRunning:
			// The run cannot be paused; quitting abandons it
			if key.Matches(msg, keys.Quit) {
				return m, tea.Quit
			}

		default:
			if key.Matches(msg, keys.Quit) || key.Matches(msg, keys.Start) {
				return m, tea.Quit
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = msg.Width - 30
		if m.bar.Width > 50 {
			m.bar.Width = 50
		}
		if m.bar.Width < 10 {
			m.bar.Width = 10
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case processingTickMsg:
		if m.state == stateRunning {
			m.frame++
			return m, processingTickCmd()
		}
		return m, nil

	case progressMsg:
		if m.state == stateRunning {
			m.applyProgress(pipeline.ProgressUpdate(msg))
		}
		return m, waitForProgress(m.updates)

	case runDoneMsg:
		return m.finishRun(msg.err)
	}

	return m, nil
}

// startRun launches the pipeline on a background worker and begins
// consuming its progress reports.
func (m Model) startRun() (tea.Model, tea.Cmd) {
	m.state = stateRunning
	m.processing.Reset()
	m.processing.Start()
	m.frame = 0
	m.percent = 0
	m.fileFailed = 0
	m.runErr = nil

	updates := make(chan pipeline.ProgressUpdate, 64)
	done := make(chan error, 1)
	m.updates = updates
	m.done = done

	orch := pipeline.New(m.ctx, m.cfg)
	orch.SetProgressCallback(func(u pipeline.ProgressUpdate) {
		updates <- u
	})

	inputs := m.inputs
	output := m.output
	go func() {
		done <- orch.Run(inputs, output)
		close(updates)
	}()

	return m, tea.Batch(processingTickCmd(), waitForProgress(updates), waitForDone(done))
}

// applyProgress maps one orchestrator report onto the step list
func (m *Model) applyProgress(u pipeline.ProgressUpdate) {
	idx := int(u.Stage)
	switch {
	case u.Done && u.Skipped:
		m.processing.SetStepByIndex(idx, StepSkipped)

	case u.Done && u.Err != nil:
		m.processing.SetStepByIndex(idx, StepFailed)

	case u.Done:
		m.processing.SetStepByIndex(idx, StepComplete)
		m.percent = 1.0

	default:
		m.processing.SetStepByIndex(idx, StepRunning)
		if u.File != "" && u.Total > 0 {
			m.processing.SetStepDetail(idx, fmt.Sprintf("%d/%d %s", u.Index, u.Total, u.File))
			m.percent = float64(u.Index-1) / float64(u.Total)
		}
		if u.Err != nil {
			m.fileFailed++
		}
	}
}

// finishRun settles the model once the background worker returns
func (m Model) finishRun(err error) (tea.Model, tea.Cmd) {
	m.elapsed = time.Since(m.processing.StartTime).Round(time.Second)

	if err != nil {
		m.state = stateFailed
		m.runErr = err
		m.processing.FailStep(err)
		if !m.noNotify {
			_ = notify.PipelineFailed(err.Error())
		}
		return m, nil
	}

	m.state = stateDone
	m.processing.Complete()
	m.percent = 1.0
	if !m.noNotify {
		_ = notify.PipelineComplete(m.output)
	}
	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	switch m.state {
	case stateRunning:
		return RenderProcessingView(m.processing, m.width, m.height, m.frame, m.bar.ViewAs(m.percent))
	case stateDone:
		return m.renderDoneView()
	case stateFailed:
		return m.renderFailedView()
	default:
		return m.renderReadyView()
	}
}

// renderReadyView shows the run summary before starting
func (m Model) renderReadyView() string {
	header := RenderHeader("Pipeline")

	var lines []string
	lines = append(lines, TitleStyle.Render(fmt.Sprintf("Ready to process %d files", len(m.inputs))))
	lines = append(lines, "")

	shown := len(m.inputs)
	if shown > 5 {
		shown = 5
	}
	for _, asset := range m.inputs[:shown] {
		lines = append(lines, ValueStyle.Render("  "+asset.Name()))
	}
	if len(m.inputs) > shown {
		lines = append(lines, InactiveStyle.Render(fmt.Sprintf("  … and %d more", len(m.inputs)-shown)))
	}
	lines = append(lines, "")

	lines = append(lines, m.summaryLine("Normalize", m.describeNormalize()))
	lines = append(lines, m.summaryLine("Fade", m.describeFade()))
	lines = append(lines, m.summaryLine("Crossfade", m.describeCrossfade()))
	lines = append(lines, m.summaryLine("Output", m.output))
	lines = append(lines, "")
	lines = append(lines, InactiveStyle.Render(m.spinner.View()+" Waiting to start"))

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	helpText := "enter - start | q - quit"
	footer := RenderHelpFooter(helpText, m.width)

	return LayoutWithHeaderFooter(header, content, footer, m.width, m.height)
}

func (m Model) summaryLine(label, value string) string {
	return LabelStyle.Render(fmt.Sprintf("%-10s ", label+":")) + ValueStyle.Render(value)
}

func (m Model) describeNormalize() string {
	if !m.cfg.Normalize.Enabled {
		return "disabled"
	}
	mode := "two-pass"
	if !m.cfg.Normalize.TwoPass {
		mode = "single-pass"
	}
	return fmt.Sprintf("%.1f LUFS / TP %.1f dBTP (%s)", m.cfg.Normalize.LUFS, m.cfg.Normalize.TruePeak, mode)
}

func (m Model) describeFade() string {
	if !m.cfg.Fade.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("in %d ms, out %d ms (from end %.1f s)",
		m.cfg.Fade.InMs, m.cfg.Fade.OutMs, m.cfg.Fade.FromEndSec)
}

func (m Model) describeCrossfade() string {
	if !m.cfg.Crossfade.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("overlap %.1f s, curve %s", m.cfg.Crossfade.OverlapSec, m.cfg.Crossfade.Curve)
}

// renderDoneView shows the success screen
func (m Model) renderDoneView() string {
	var lines []string
	lines = append(lines, SuccessStyle.Render("✓ Pipeline complete"))
	lines = append(lines, "")
	lines = append(lines, LabelStyle.Render("Output: ")+ValueStyle.Render(m.output))
	lines = append(lines, LabelStyle.Render("Elapsed: ")+ValueStyle.Render(m.elapsed.String()))
	if m.fileFailed > 0 {
		lines = append(lines, InactiveStyle.Render(fmt.Sprintf("%d files dropped during processing", m.fileFailed)))
	}
	lines = append(lines, "")
	lines = append(lines, InactiveStyle.Render("Press q to exit"))

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return CenterContent(content, m.width, m.height)
}

// renderFailedView shows the failure screen
func (m Model) renderFailedView() string {
	var lines []string
	lines = append(lines, ErrorStyle.Render("✗ Pipeline failed"))
	lines = append(lines, "")
	if m.runErr != nil {
		lines = append(lines, ValueStyle.Render(m.runErr.Error()))
	}
	lines = append(lines, "")
	lines = append(lines, InactiveStyle.Render("Press q to exit"))

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return CenterContent(content, m.width, m.height)
}

// waitForProgress reads the next progress report; the command re-arms
// after each message until the channel closes.
func waitForProgress(ch chan pipeline.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg(u)
	}
}

// waitForDone delivers the pipeline result
func waitForDone(ch chan error) tea.Cmd {
	return func() tea.Msg {
		return runDoneMsg{err: <-ch}
	}
}

// Run starts the interactive pipeline screen and blocks until it exits.
// The returned error is the pipeline failure when the run failed, so
// callers can map it to the process exit code.
func Run(ctx *pipeline.RunContext, cfg *config.Config, inputs []models.AudioAsset, output string, noNotify bool) error {
	p := tea.NewProgram(NewModel(ctx, cfg, inputs, output, noNotify), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.runErr != nil {
		return fm.runErr
	}
	return nil
}
