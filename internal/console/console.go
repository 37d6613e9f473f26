package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"AviatorStats/internal/logger"
)

var log = logger.WithComponent("console")

// CommandHandler is called for each command line and returns the reply.
type CommandHandler func(command string) string

// Console reads commands line by line and writes replies. Send may be called
// from other goroutines, e.g. when a prediction batch resolves.
type Console struct {
	in  io.Reader
	out io.Writer
	mu  sync.Mutex
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out}
}

// Send writes a message followed by a blank line.
func (c *Console) Send(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintln(c.out, strings.TrimRight(text, "\n")+"\n"); err != nil {
		return fmt.Errorf("write reply: %w", err)
	}
	return nil
}

// Run dispatches commands until the input ends or ctx is cancelled.
func (c *Console) Run(ctx context.Context, handler CommandHandler) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("console stopped")
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				log.Info("console input closed")
				return nil
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}
			log.WithField("command", text).Debug("received command")
			if reply := handler(text); reply != "" {
				if err := c.Send(reply); err != nil {
					log.WithError(err).Error("send reply")
				}
			}
		}
	}
}
