package apierr

import (
	"log/slog"
)

// Response is what the transport hands over for classification: the status
// code as a string, the raw body, and whatever diagnostic context the
// triggering layer attached (may include a "password" entry).
type Response struct {
	Code    string
	Data    string
	Context map[string]any
}

// Exact-match table; anything else falls through to KindServer. MDS returns
// plain numeric codes, but lookup is on the string, not a numeric range: an
// unlisted 5xx lands on the fallback the same way "teapot" would.
var kindByCode = map[string]Kind{
	"204": KindNoContent,
	"400": KindBadRequest,
	"401": KindUnauthorized,
	"403": KindForbidden,
	"404": KindNotFound,
	"410": KindGone,
	"412": KindPrecondition,
}

// Classify builds the typed error for a failing MDS response. It returns the
// error rather than raising it; propagation is the caller's job.
//
// As a side effect it emits one debug record on log (slog.Default() when nil)
// carrying the response context with the password scrubbed. The scrub happens
// unconditionally before the logging call: credentials must never reach a
// sink regardless of handler or level configuration.
func Classify(res Response, log *slog.Logger) *Error {
	kind, ok := kindByCode[res.Code]
	if !ok {
		kind = KindServer
	}
	e := &Error{
		Kind:   kind,
		Family: kind.Family(),
		Code:   res.Code,
		Data:   res.Data,
	}

	info := Redact(res.Context)
	if log == nil {
		log = slog.Default()
	}
	log.Debug("mds error response",
		slog.String("code", res.Code),
		slog.String("kind", kind.String()),
		slog.String("family", e.Family.String()),
		slog.Any("context", info),
	)
	return e
}

// Redact returns a fresh map with the "password" entry removed. A missing
// key is a no-op; the input map is never mutated.
func Redact(ctx map[string]any) map[string]any {
	out := make(map[string]any, len(ctx))
	for k, v := range ctx {
		if k == "password" {
			continue
		}
		out[k] = v
	}
	return out
}
