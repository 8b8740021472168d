package tui

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/montcalc/internal/config"
	"github.com/agbru/montcalc/internal/engine"
	apperrors "github.com/agbru/montcalc/internal/errors"
	"github.com/agbru/montcalc/internal/orchestration"
	"github.com/agbru/montcalc/internal/sysmon"
)

// ExecutionState holds the run-related fields of a session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	engines    []engine.Engine
	expected   orchestration.ExpectedFunc
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and derives panel sizes.
type LayoutManager struct {
	width  int
	height int
}

// Layout constants for the dashboard.
const (
	headerHeight             = 1
	footerHeight             = 1
	minBodyHeight            = 6
	EnginesPanelWidthPercent = 62
)

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) enginesWidth() int {
	return l.width * EnginesPanelWidthPercent / 100
}

func (l LayoutManager) metricsWidth() int {
	return l.width - l.enginesWidth()
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header  HeaderModel
	table   EnginesModel
	metrics MetricsModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	config    config.AppConfig
	sampler   *sysmon.Sampler
	ref       *programRef
	paused    bool
}

// NewModel creates a dashboard running cfg's chain on engines. expected, when
// not nil, verifies every shape group against the oracle.
func NewModel(parentCtx context.Context, engines []engine.Engine, cfg config.AppConfig, expected orchestration.ExpectedFunc, version string) Model {
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = e.Name()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	keymap := DefaultKeyMap()

	return Model{
		header:  NewHeaderModel(version, fmt.Sprintf("%s × %d", cfg.ModulusLabel(), cfg.Steps)),
		table:   NewEnginesModel(names),
		metrics: NewMetricsModel(cfg.Steps * len(engines)),
		footer:  NewFooterModel(keymap),
		keymap:  keymap,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			engines:  engines,
			expected: expected,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		config:    cfg,
		sampler:   sysmon.NewSampler(sparklineSamples),
		ref:       &programRef{},
	}
}

// Init starts the run, the sampling ticker and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startCalculationCmd(m.ref, m.ctx, m.engines, m.config, m.expected, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if !m.paused {
			m.table.UpdateProgress(msg.EngineIndex, msg.Value)
			m.metrics.UpdateProgress(msg.AverageProgress, time.Now())
			m.footer.SetProgress(msg.AverageProgress, msg.ETA)
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ComparisonResultsMsg:
		m.table.ApplyResults(msg.Results)
		return m, nil

	case GroupMsg:
		m.table.AddGroup(msg.Group)
		return m, nil

	case ErrorMsg:
		m.table.SetFailure(msg.Err)
		m.footer.SetError(true)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(m.sampler), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil

	case CalculationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if m.done {
			return m, nil
		}
		m.done = true
		m.exitCode = apperrors.HandleCalculationError(msg.Err, m.header.Elapsed(), io.Discard, nil)
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)

		m.header.Reset()
		m.table.Reset()
		m.metrics = NewMetricsModel(m.config.Steps * len(m.table.rows))
		m.layoutPanels()
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.footer.SetProgress(0, 0)
		m.done, m.paused = false, false
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			tickCmd(),
			startCalculationCmd(m.ref, m.ctx, m.engines, m.config, m.expected, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Up):
		m.table.MoveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		m.table.MoveCursor(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.table.MoveCursor(-len(m.table.rows))
	case key.Matches(msg, m.keymap.PageDown):
		m.table.MoveCursor(len(m.table.rows))
	case key.Matches(msg, m.keymap.Details):
		m.table.ToggleFull()
	}
	return m, nil
}

// View renders the whole dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.table.View(), m.metrics.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.table.SetSize(m.enginesWidth(), m.bodyHeight())
	m.metrics.SetSize(m.metricsWidth(), m.bodyHeight())
}

// ExitCode returns the exit code of the last finished run.
func (m Model) ExitCode() int { return m.exitCode }

// Run shows the dashboard until the user quits and returns the exit code of
// the last run.
func Run(ctx context.Context, engines []engine.Engine, cfg config.AppConfig, expected orchestration.ExpectedFunc, version string) int {
	initTUIStyles()

	model := NewModel(ctx, engines, cfg, expected, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil && finalModel == nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startCalculationCmd runs the chains and reports through ref.
func startCalculationCmd(ref *programRef, ctx context.Context, engines []engine.Engine, cfg config.AppConfig, expected orchestration.ExpectedFunc, gen uint64) tea.Cmd {
	return func() tea.Msg {
		presenter := &TUIResultPresenter{ref: ref}
		req := orchestration.ChainRequest{A: cfg.A, B: cfg.B, Steps: cfg.Steps, Parallelism: cfg.Parallelism}
		results := orchestration.ExecuteChains(ctx, engines, req, &TUIProgressReporter{ref: ref}, io.Discard)
		opts := orchestration.PresentationOptions{
			Field:   cfg.ModulusLabel(),
			Steps:   cfg.Steps,
			Verbose: cfg.Verbose,
			Verify:  expected != nil,
		}
		exitCode := orchestration.AnalyzeComparisonResults(results, opts, expected, presenter, presenter, io.Discard)
		return CalculationCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

func sampleSysStatsCmd(s *sysmon.Sampler) tea.Cmd {
	return func() tea.Msg {
		st := s.Sample()
		return SysStatsMsg{Stats: st, History: s.History()}
	}
}

func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
