package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/game"
)

func RunBoard(ctx context.Context, svc *game.Service, out io.Writer) error {
	m := newDashModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
