// Package apierror classifies every failure of a backend call into a
// small taxonomy the rest of the app can branch on. Callers never
// inspect HTTP status codes or response bodies directly — they ask
// for the Kind.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates the failure classes of a backend call.
type Kind int

const (
	// KindNetwork — no response received (DNS, refused, timeout).
	KindNetwork Kind = iota
	// KindValidation — 4xx other than 401; backend message is user-facing.
	KindValidation
	// KindSessionInvalid — 401 outside the login endpoint; the session
	// token is no longer accepted and a global logout has been triggered.
	KindSessionInvalid
	// KindCredentials — 401 on the login endpoint (wrong email/password).
	KindCredentials
	// KindServer — 5xx.
	KindServer
	// KindUnknown — anything that did not fit the classes above.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindSessionInvalid:
		return "session_invalid"
	case KindCredentials:
		return "credentials"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the canonical error for every failed backend call.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 when no response was received
	Message string // user-facing message
	cause   error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds an Error with an explicit kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Network wraps a transport-level failure (no response received).
func Network(cause error) *Error {
	return &Error{Kind: KindNetwork, Message: "Não foi possível conectar ao servidor.", cause: cause}
}

// remoteEnvelope is the backend's error body. The API is inconsistent
// about the field name, so both are checked ("erro" wins).
type remoteEnvelope struct {
	Erro    string `json:"erro"`
	Message string `json:"message"`
}

// FromResponse classifies a non-2xx response. loginPath tells the 401
// branch apart: bad credentials on the login endpoint versus an
// invalid/expired session everywhere else.
func FromResponse(status int, body []byte, loginPath bool) *Error {
	msg := remoteMessage(body)

	switch {
	case status == http.StatusUnauthorized && loginPath:
		if msg == "" {
			msg = "Email ou senha inválidos."
		}
		return &Error{Kind: KindCredentials, Status: status, Message: msg}
	case status == http.StatusUnauthorized:
		if msg == "" {
			msg = "Sessão inválida ou expirada."
		}
		return &Error{Kind: KindSessionInvalid, Status: status, Message: msg}
	case status >= 400 && status < 500:
		if msg == "" {
			msg = "Requisição rejeitada pelo servidor."
		}
		return &Error{Kind: KindValidation, Status: status, Message: msg}
	case status >= 500:
		if msg == "" {
			msg = "Erro interno do servidor."
		}
		return &Error{Kind: KindServer, Status: status, Message: msg}
	default:
		if msg == "" {
			msg = fmt.Sprintf("Resposta inesperada do servidor (%d).", status)
		}
		return &Error{Kind: KindUnknown, Status: status, Message: msg}
	}
}

func remoteMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var env remoteEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Erro != "" {
			return env.Erro
		}
		if env.Message != "" {
			return env.Message
		}
	}
	// Some endpoints answer with a bare string body.
	var plain string
	if err := json.Unmarshal(body, &plain); err == nil && len(plain) > 0 && len(plain) < 200 {
		return plain
	}
	return ""
}

// KindOf extracts the Kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsSessionInvalid reports whether err is a classified invalid-session
// 401. Call sites must stay silent on these — the logout hook already
// handled the user-visible consequence.
func IsSessionInvalid(err error) bool { return KindOf(err) == KindSessionInvalid }

// IsNetwork reports whether err is a connectivity failure.
func IsNetwork(err error) bool { return KindOf(err) == KindNetwork }

// UserMessage returns the message to show the user for err, with a
// generic fallback for errors that did not come from the API layer.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Ocorreu um erro inesperado."
}
