package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// CONSISTENT ERROR FORMAT:
// Every error response from the API has the same one-field shape:
//
//	{"msg": "Event not found"}
//
// The client renders msg directly; it never needs to special-case the
// status code to find the message. This shape is part of the API contract —
// the frontend parses exactly this key.
//
// WHY HELPERS?
// Without them, every handler repeats the same boilerplate:
//
//	w.Header().Set("Content-Type", "application/json")
//	w.WriteHeader(statusCode)
//	json.NewEncoder(w).Encode(data)

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/event-registration/internal/apperror"
)

// MsgResponse is the standard message body for errors and simple
// acknowledgements ({"msg": "Cancelled successfully"}).
type MsgResponse struct {
	Msg string `json:"msg"`
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status code MUST be set BEFORE writing the body. Once
// w.Write() runs (Encode calls it internally), the headers are sent and any
// later change is silently ignored. Hence:
//  1. w.Header().Set(...)     ← set headers
//  2. w.WriteHeader(status)   ← send status + headers
//  3. json.Encode(data)       ← send body
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — all we can do is log it. This is
			// rare (usually an unencodable type like a channel).
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status code and
// sends it as {"msg": ...}.
//
// ERROR MAPPING:
// The service layer returns apperror sentinels; this is the single place
// they become status codes:
//
//	ErrValidation, ErrDuplicate, ErrInvalidCredentials → 400
//	ErrUnauthorized                                    → 401
//	ErrForbidden                                       → 403
//	ErrNotFound                                        → 404
//	anything else                                      → 500
//
// WHY HERE AND NOT IN THE SERVICE?
// The service layer should not know about HTTP status codes. errors.Is()
// walks the whole wrap chain (every service wraps with %w), so the mapping
// works no matter how many layers added context.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	// NEVER expose internal error detail to the client — the raw message
	// might contain SQL or file paths. Unclassified errors all read the same.
	msg := "Server error"

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message

		switch {
		case errors.Is(err, apperror.ErrValidation),
			errors.Is(err, apperror.ErrDuplicate),
			errors.Is(err, apperror.ErrInvalidCredentials):
			status = http.StatusBadRequest // 400
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized // 401
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden // 403
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound // 404
		default:
			// AppError with an unmapped sentinel — treat as internal and
			// fall back to the generic message.
			msg = "Server error"
		}
	}

	writeJSON(w, status, MsgResponse{Msg: msg})
}
