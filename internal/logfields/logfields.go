package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyLanguage   = "lang"
	KeySlug       = "slug"
	KeyTopic      = "topic"
	KeyTitle      = "title"
	KeyPath       = "path"
	KeyModel      = "model"
	KeyCount      = "count"
	KeyStatus     = "status"
	KeyURL        = "url"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Language(l string) slog.Attr     { return slog.String(KeyLanguage, l) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Topic(t string) slog.Attr        { return slog.String(KeyTopic, t) }
func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Model(m string) slog.Attr        { return slog.String(KeyModel, m) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
