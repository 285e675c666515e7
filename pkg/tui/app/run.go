package app

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	appsvc "tableflip.dev/abcinema/pkg/app"
	"tableflip.dev/abcinema/pkg/suggest"
	"tableflip.dev/abcinema/pkg/tui/events"
)

// Run starts the program and blocks until it exits. Engine, toast and list
// change signals are forwarded into the program as messages.
func Run(ctx context.Context, svc *appsvc.Service, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	engine := svc.Suggestions(nil)
	defer engine.Shutdown()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctx, svc, engine), opts...)

	searchPump := events.NewPump(func() tea.Msg {
		return events.SearchChangedMsg{State: engine.State()}
	})
	toastPump := events.NewPump(func() tea.Msg {
		return events.ToastsChangedMsg{Messages: svc.Toasts.Messages()}
	})
	listPump := events.NewPump(func() tea.Msg {
		return events.ListsChangedMsg{}
	})

	engine.OnChange(func(suggest.State) { searchPump.Poke() })
	svc.Toasts.OnChange(toastPump.Poke)
	unsubscribe := svc.Bus.Subscribe(listPump.Poke)
	defer unsubscribe()

	if err := svc.Watch(ctx); err != nil {
		slog.Warn("tui.watch_failed", "err", err)
	}
	for _, pump := range []*events.Pump{searchPump, toastPump, listPump} {
		go pump.Run(ctx, p.Send)
	}

	_, err := p.Run()
	return err
}
