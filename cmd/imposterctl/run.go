package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/danmuck/imposterctl/internal/config"
	"github.com/danmuck/imposterctl/internal/logging"
	"github.com/danmuck/imposterctl/internal/observability"
	"github.com/danmuck/imposterctl/internal/session"
	"github.com/danmuck/imposterctl/internal/transport"
)

func run(ctx context.Context, cfg config.ClientConfig) error {
	logging.ConfigureRuntime()
	log := logging.Logger("cli")

	socket, err := transport.NewSocket(cfg.ServerURL, cfg.Transport)
	if err != nil {
		return err
	}
	defer socket.Close()

	core := session.NewCore(socket)
	printer := newPrinter()
	core.Store().SetOnChange(printer.render)
	if err := core.Start(); err != nil {
		return err
	}
	defer core.Stop()

	if cfg.DebugAddr != "" {
		debug := observability.NewDebugServer(cfg.DebugAddr, func() any {
			return core.Store().Snapshot()
		}, logging.Logger("debug"))
		defer debug.Close()
		go func() {
			if err := debug.Serve(); err != nil {
				log.Error().Err(err).Msg("debug server failed")
			}
		}()
	}

	if err := socket.Start(ctx); err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.ServerURL, err)
	}
	if err := core.Actions().Join(cfg.Name); err != nil {
		return fmt.Errorf("join as %q: %w", cfg.Name, err)
	}

	fmt.Printf("joined as %s; /start /votestart /clue <word> /vote <id> /players /quit, anything else is chat\n", cfg.Name)
	return inputLoop(core, cfg.Name)
}

func inputLoop(core *session.Core, name string) error {
	actions := core.Actions()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		var err error
		switch cmd {
		case "/quit":
			return nil
		case "/start":
			err = actions.StartGame()
		case "/votestart":
			err = actions.StartVoting()
		case "/clue":
			err = actions.SubmitClue(arg)
		case "/vote":
			err = actions.CastVote(strings.TrimSpace(arg))
		case "/players":
			printRoster(core.Store().Snapshot(), name)
		default:
			err = actions.SendChat(line)
		}
		if err != nil {
			fmt.Printf("! %v\n", err)
		}
	}
	return scanner.Err()
}

func printRoster(state session.State, name string) {
	for i, p := range state.Players {
		marks := make([]string, 0, 3)
		if i == 0 {
			marks = append(marks, "host")
		}
		if p.Name == name {
			marks = append(marks, "you")
		}
		if !p.Alive {
			marks = append(marks, "out")
		}
		suffix := ""
		if len(marks) > 0 {
			suffix = " (" + strings.Join(marks, ", ") + ")"
		}
		fmt.Printf("  %s  %s%s\n", p.ID, p.Name, suffix)
	}
	if !state.Connected {
		fmt.Println("  [disconnected]")
	}
}

// printer writes message-log entries to stdout as they are appended. It
// tracks how far it has printed; the log is append-only so an index is
// enough.
type printer struct {
	mu      sync.Mutex
	printed int
}

func newPrinter() *printer {
	return &printer{}
}

func (p *printer) render(state session.State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for ; p.printed < len(state.Messages); p.printed++ {
		printMessage(state.Messages[p.printed])
	}
}

func printMessage(m session.Message) {
	ts := m.Time.Format("15:04:05")
	switch m.Kind {
	case session.MessageChat:
		fmt.Printf("[%s] %s: %s\n", ts, m.From, m.Text)
	case session.MessageVote:
		fmt.Printf("[%s] * %s\n", ts, m.Text)
	case session.MessageVoteResults:
		fmt.Printf("[%s] * %s was voted out\n", ts, m.EliminatedName)
		for name, count := range m.Tally {
			fmt.Printf("         %s: %d\n", name, count)
		}
	default:
		fmt.Printf("[%s] -- %s\n", ts, m.Text)
	}
}
