package session

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"modavintage/internal/apierror"
	"modavintage/internal/httpclient"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// State is the root navigation state of the app.
type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

var resetCodePattern = regexp.MustCompile(`^\d{6}$`)

// Bootstrapper decides the authenticated/unauthenticated root state
// exactly once at process start and is the single owner of "is logged
// in" afterwards. Its Logout is the handler the HTTP client invokes on
// invalid-session 401s.
type Bootstrapper struct {
	mu     sync.Mutex
	state  State
	booted bool
	store  TokenStore
	client *httpclient.Client
	logger zerolog.Logger
}

func NewBootstrapper(store TokenStore, client *httpclient.Client) *Bootstrapper {
	return &Bootstrapper{
		state:  StateLoading,
		store:  store,
		client: client,
		logger: log.With().Str("component", "session").Logger(),
	}
}

// State returns the current root state.
func (b *Bootstrapper) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Bootstrap restores and validates a persisted session. Runs the full
// sequence only once: later calls just report the current state — there
// is no way back to StateLoading.
func (b *Bootstrapper) Bootstrap(ctx context.Context) State {
	b.mu.Lock()
	if b.booted {
		state := b.state
		b.mu.Unlock()
		return state
	}
	b.booted = true
	b.mu.Unlock()

	token, err := b.store.Get()
	if err != nil || token == "" {
		if err != nil {
			b.logger.Error().Err(err).Msg("token store unreadable, starting unauthenticated")
		}
		b.setState(StateUnauthenticated)
		return StateUnauthenticated
	}

	// Cheap local pre-check: a token past its exp claim cannot validate,
	// skip the round-trip and go straight to logout.
	if tokenExpired(token) {
		b.logger.Info().Msg("stored token already expired")
		b.Logout()
		return StateUnauthenticated
	}

	// Validate against a minimal protected listing call. A 401 here is
	// classified by the HTTP core, which already invoked Logout.
	query := url.Values{}
	query.Set("page", "0")
	query.Set("size", "1")
	if err := b.client.Get(ctx, "/clientes", query, nil); err != nil {
		if apierror.IsSessionInvalid(err) {
			// The client's handler cleared everything; double-check in
			// case the store write failed.
			if remaining, _ := b.store.Get(); remaining != "" {
				b.logger.Warn().Msg("token survived invalid-session handling, forcing logout")
				b.Logout()
			}
		} else {
			// Network or server failure during bootstrap: fall back to
			// unauthenticated rather than trusting an unverifiable token.
			b.logger.Warn().Err(err).Msg("token validation failed, starting unauthenticated")
			b.Logout()
		}
		b.setState(StateUnauthenticated)
		return StateUnauthenticated
	}

	b.client.ResetSessionGuard()
	b.setState(StateAuthenticated)
	return StateAuthenticated
}

// loginResponse is the body of POST /auth/login.
type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates, persists the token and flips the root state.
func (b *Bootstrapper) Login(ctx context.Context, email, senha string) error {
	email = strings.TrimSpace(email)
	if email == "" || senha == "" {
		return apierror.New(apierror.KindValidation, "Informe os campos obrigatórios: e-mail e senha.")
	}

	var resp loginResponse
	payload := map[string]string{"email": email, "senha": senha}
	if err := b.client.Post(ctx, httpclient.LoginPath, payload, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return apierror.New(apierror.KindUnknown, "Resposta inesperada do servidor.")
	}
	if err := b.store.Set(resp.Token); err != nil {
		return apierror.New(apierror.KindUnknown, "Não foi possível guardar a sessão.")
	}

	b.client.ResetSessionGuard()
	b.setState(StateAuthenticated)
	b.logger.Info().Msg("login successful")
	return nil
}

// Logout clears the stored token and flips to unauthenticated.
// Idempotent and safe to call concurrently — it is reached from the
// HTTP core's 401 handler, from bootstrap fallbacks and from the user.
func (b *Bootstrapper) Logout() {
	if err := b.store.Delete(); err != nil {
		b.logger.Error().Err(err).Msg("failed to clear stored token")
	}
	b.mu.Lock()
	if b.state != StateUnauthenticated {
		b.state = StateUnauthenticated
		b.logger.Info().Msg("session cleared")
	}
	b.mu.Unlock()
}

func (b *Bootstrapper) setState(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

// ── Password reset flow ───────────────────────────────────────────────────────

type mensagemResponse struct {
	Mensagem string `json:"mensagem"`
}

// RequestPasswordReset asks the backend to email a 6-digit reset code.
func (b *Bootstrapper) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apierror.New(apierror.KindValidation, "Informe o e-mail cadastrado.")
	}
	var resp mensagemResponse
	if err := b.client.Post(ctx, "/auth/solicitar-reset-senha", map[string]string{"email": email}, &resp); err != nil {
		return "", err
	}
	return resp.Mensagem, nil
}

// ResetPassword submits the emailed 6-digit code with the new password.
func (b *Bootstrapper) ResetPassword(ctx context.Context, code, novaSenha string) (string, error) {
	code = strings.TrimSpace(code)
	if !resetCodePattern.MatchString(code) {
		return "", apierror.New(apierror.KindValidation, "O código de recuperação tem 6 dígitos.")
	}
	if len(novaSenha) < 4 {
		return "", apierror.New(apierror.KindValidation, "A nova senha é muito curta.")
	}
	payload := map[string]string{"token": code, "novaSenha": novaSenha}
	var resp mensagemResponse
	if err := b.client.Post(ctx, "/auth/resetar-senha", payload, &resp); err != nil {
		return "", err
	}
	return resp.Mensagem, nil
}

// tokenExpired peeks at the JWT exp claim without verifying the
// signature (the client has no key material — verification is the
// server's job). Unparseable tokens are NOT treated as expired; the
// validation call settles those.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// ErrNotAuthenticated is returned by helpers that require a live session.
var ErrNotAuthenticated = errors.New("not authenticated")

// RequireAuthenticated returns ErrNotAuthenticated unless the
// bootstrapped state is authenticated.
func (b *Bootstrapper) RequireAuthenticated() error {
	if b.State() != StateAuthenticated {
		return ErrNotAuthenticated
	}
	return nil
}
