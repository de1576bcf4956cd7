package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// consoleHandler prints one tagged line per record:
//
//	> Problem : file 'a.yml' not found.
//	  Analyze : a.yml
//	  Compiled : a.yml
//
// The record message is the tag; attribute values form the detail.
// Context attributes (compile id, source) are omitted.
type consoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	errTag *color.Color
	infTag *color.Color
	wrnTag *color.Color
	okTag  *color.Color
}

func newConsoleHandler(w io.Writer, level slog.Leveler, noColor bool) *consoleHandler {
	h := &consoleHandler{
		mu:     &sync.Mutex{},
		w:      w,
		level:  level,
		errTag: color.New(color.FgRed, color.Bold),
		infTag: color.New(color.FgHiBlack, color.Bold),
		wrnTag: color.New(color.FgYellow, color.Bold),
		okTag:  color.New(color.FgGreen, color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{h.errTag, h.infTag, h.wrnTag, h.okTag} {
			c.DisableColor()
		}
	}
	return h
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	prefix, tag := "   ", h.infTag
	switch {
	case r.Level >= slog.LevelError:
		prefix, tag = " > ", h.errTag
	case r.Level >= slog.LevelWarn:
		prefix, tag = " ! ", h.wrnTag
	case r.Level == LevelDone:
		tag = h.okTag
	}

	var details []string
	appendAttr := func(a slog.Attr) bool {
		if hiddenConsoleKeys[a.Key] {
			return true
		}
		if v := a.Value.Resolve().String(); v != "" {
			details = append(details, v)
		}
		return true
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	r.Attrs(appendAttr)

	line := prefix + tag.Sprint(r.Message)
	if len(details) > 0 {
		line += " : " + strings.Join(details, " ")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.w, line)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// WithGroup is a no-op: console lines have no nesting.
func (h *consoleHandler) WithGroup(string) slog.Handler {
	return h
}

var hiddenConsoleKeys = map[string]bool{
	string(CompileIDKey): true,
	string(SourceKey):    true,
}
