// Package tui renders the terminal UI of the watcher CLI: a single screen
// that tracks a translation job from pending to its terminal state.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/voxlate/voxlate/client"
	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/models"
)

var ErrUserQuit = errors.New("interrupted by user")

type TUI struct {
	client *client.Client
}

func New(c *client.Client, _ *logger.Logger) (*TUI, error) {
	return &TUI{client: c}, nil
}

// Watch runs the watcher screen until the job finishes or the user quits.
// An empty jobID watches the server's legacy startup job.
func (t *TUI) Watch(ctx context.Context, jobID string) (models.JobStatus, error) {
	model := newWatchModel(ctx, t.client, jobID)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return "", runErr
	}

	result, ok := finalModel.(watchModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if result.quitByUser {
		return "", ErrUserQuit
	}
	if result.err != nil {
		return "", result.err
	}

	return result.status, nil
}
