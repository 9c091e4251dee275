package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

// Handler is a compact colored slog handler for the engine server. Records
// carry a "type" attr (engine/db/sys) that is surfaced as a prefix tag.
type Handler struct {
	opts      *slog.HandlerOptions
	startTime time.Time
	attrs     []slog.Attr
	groups    []string

	mu  *sync.Mutex
	out func(string)
}

func NewHandler() *Handler {
	return &Handler{
		opts:      &slog.HandlerOptions{Level: slog.LevelDebug},
		startTime: time.Now(),
		mu:        &sync.Mutex{},
		out:       func(s string) { fmt.Print(s) },
	}
}

// SetLevel adjusts the minimum level once the configured level is known.
func (h *Handler) SetLevel(level slog.Level) {
	h.opts.Level = level
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var levelColor, levelText string
	switch r.Level {
	case slog.LevelDebug:
		levelColor, levelText = colorPurple, "DEBUG"
	case slog.LevelInfo:
		levelColor, levelText = colorGreen, "INFO"
	case slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	default:
		levelColor, levelText = colorRed, "ERROR"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s%s%s]", time.Now().Format("15:04:05"), levelColor, levelText, colorReset)

	tag := "SYS"
	var rest []slog.Attr
	collect := func(a slog.Attr) {
		if a.Key == "type" {
			tag = strings.ToUpper(a.Value.String())
			return
		}
		rest = append(rest, a)
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(a)
		return true
	})

	fmt.Fprintf(&b, " %s%-3s%s %s", colorCyan, tag, colorReset, r.Message)
	for _, a := range rest {
		fmt.Fprintf(&b, " %s=%v", strings.Join(append(h.groups, a.Key), "."), a.Value)
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	h.out(b.String())
	return nil
}
