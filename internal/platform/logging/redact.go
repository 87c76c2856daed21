package logging

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// redactedFields never reach a log sink, whatever their value.
var redactedFields = []string{
	"password", "secret", "token", "credentials", "cookie",
	"authorization", "Authorization", "api_key", "apiKey", "X-Api-Key",
}

var (
	jwtValue    = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)
	schemeValue = regexp.MustCompile(`(?i)^(bearer|basic)\s+.+$`)

	// A quote API base URL may carry user:pass@ credentials.
	userinfoURL = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://[^/@\s:]+:[^/@\s]+@`)
)

// RedactOptions returns the masq options every sink uses, plus extra.
func RedactOptions(extra ...masq.Option) []masq.Option {
	opts := make([]masq.Option, 0, len(redactedFields)+4+len(extra))
	for _, name := range redactedFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	opts = append(opts,
		masq.WithFieldPrefix("secret"),
		masq.WithRegex(jwtValue),
		masq.WithRegex(schemeValue),
		masq.WithRegex(userinfoURL),
	)

	return append(opts, extra...)
}

// NewReplaceAttr returns a slog ReplaceAttr that redacts secrets.
func NewReplaceAttr(extra ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(RedactOptions(extra...)...)
}

// redactingHandler applies ReplaceAttr for handlers that take no
// slog.HandlerOptions, such as the charmbracelet console.
type redactingHandler struct {
	next    slog.Handler
	replace func([]string, slog.Attr) slog.Attr
	groups  []string
}

func newRedactingHandler(next slog.Handler, replace func([]string, slog.Attr) slog.Attr) slog.Handler {
	if replace == nil {
		return next
	}
	return &redactingHandler{next: next, replace: replace}
}

func (h *redactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *redactingHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.replace(h.groups, a))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h *redactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	replaced := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		replaced[i] = h.replace(h.groups, a)
	}
	return &redactingHandler{next: h.next.WithAttrs(replaced), replace: h.replace, groups: h.groups}
}

func (h *redactingHandler) WithGroup(name string) slog.Handler {
	groups := append(append([]string(nil), h.groups...), name)
	return &redactingHandler{next: h.next.WithGroup(name), replace: h.replace, groups: groups}
}
