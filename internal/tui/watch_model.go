package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voxlate/voxlate/client"
	"github.com/voxlate/voxlate/models"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	completedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	helpStyle      = lipgloss.NewStyle().Faint(true)
)

// statusMsg carries the terminal outcome of the watched job.
type statusMsg struct {
	status models.JobStatus
	err    error
}

// copiedMsg reports the result of copying the job ID to the clipboard.
type copiedMsg struct {
	err error
}

type watchModel struct {
	ctx    context.Context
	client *client.Client
	jobID  string

	spinner spinner.Model

	status     models.JobStatus
	err        error
	done       bool
	copied     bool
	quitByUser bool
}

func newWatchModel(ctx context.Context, c *client.Client, jobID string) watchModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = pendingStyle

	return watchModel{
		ctx:     ctx,
		client:  c,
		jobID:   jobID,
		spinner: s,
		status:  models.JobStatusPending,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdWait())
}

// cmdWait blocks on the client's polling loop and delivers the terminal
// status as a message.
func (m watchModel) cmdWait() tea.Cmd {
	return func() tea.Msg {
		if m.jobID == "" {
			status, err := m.client.WaitForCompletion(m.ctx)
			return statusMsg{status: status, err: err}
		}
		status, err := m.client.WaitForJob(m.ctx, m.jobID)
		return statusMsg{status: status, err: err}
	}
}

func (m watchModel) cmdCopyJobID() tea.Cmd {
	jobID := m.jobID
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(jobID)}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !m.done {
				m.quitByUser = true
			}
			return m, tea.Quit
		case "c":
			if m.jobID != "" {
				return m, m.cmdCopyJobID()
			}
		}

	case statusMsg:
		m.done = true
		m.status = msg.status
		m.err = msg.err
		return m, nil

	case copiedMsg:
		m.copied = msg.err == nil
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m watchModel) View() string {
	target := "startup job (GET /status)"
	if m.jobID != "" {
		target = "job " + m.jobID
	}

	header := titleStyle.Render("voxlate watcher") + "\n" +
		fmt.Sprintf("watching %s\n\n", target)

	var body string
	switch {
	case m.err != nil:
		body = errorStyle.Render("✗ " + m.err.Error())
	case !m.done:
		body = m.spinner.View() + pendingStyle.Render(" translation in progress...")
	case m.status == models.JobStatusCompleted:
		body = completedStyle.Render("✓ translation completed")
	default:
		body = errorStyle.Render("✗ translation failed")
	}

	help := "\n\n" + helpStyle.Render("q quit")
	if m.jobID != "" {
		copyHint := "c copy job id"
		if m.copied {
			copyHint = "copied!"
		}
		help += helpStyle.Render("  ·  " + copyHint)
	}

	return header + body + help + "\n"
}
