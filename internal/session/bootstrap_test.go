package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"modavintage/internal/apierror"
	"modavintage/internal/httpclient"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Test backend ──────────────────────────────────────────────────────────────

// fakeBackend emulates the two endpoints the session lifecycle touches:
// login and the minimal protected listing used to validate a restored
// token.
type fakeBackend struct {
	token    string // the one token the backend accepts
	requests atomic.Int32
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["email"] != "dona@modavintage.com" || creds["senha"] != "brecho123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"erro": "Email ou senha inválidos"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": b.token})
	})
	mux.HandleFunc("GET /clientes", func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)
		if r.Header.Get("Authorization") != "Bearer "+b.token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}, "last": true})
	})
	return mux
}

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "dona@modavintage.com",
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	signed, err := tok.SignedString([]byte("segredo-de-teste"))
	require.NoError(t, err)
	return signed
}

// buildSession wires store, client and bootstrapper the way the
// application does: the client's 401 handler is the bootstrapper's
// Logout.
func buildSession(t *testing.T, baseURL string, store TokenStore) *Bootstrapper {
	t.Helper()
	var boot *Bootstrapper
	client := httpclient.New(baseURL, 2*time.Second, store, func() { boot.Logout() })
	boot = NewBootstrapper(store, client)
	return boot
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestLoginDepoisBootstrap_RestauraSessao(t *testing.T) {
	backend := &fakeBackend{token: signedToken(t, time.Hour)}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	store := NewMemoryStore("")
	boot := buildSession(t, srv.URL, store)

	require.NoError(t, boot.Login(context.Background(), "dona@modavintage.com", "brecho123"))
	assert.Equal(t, StateAuthenticated, boot.State())

	stored, _ := store.Get()
	assert.Equal(t, backend.token, stored)

	// A new process start with the same store validates and restores.
	restarted := buildSession(t, srv.URL, store)
	assert.Equal(t, StateAuthenticated, restarted.Bootstrap(context.Background()))
}

func TestLogin_CredenciaisInvalidas(t *testing.T) {
	backend := &fakeBackend{token: signedToken(t, time.Hour)}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	store := NewMemoryStore("")
	boot := buildSession(t, srv.URL, store)

	err := boot.Login(context.Background(), "dona@modavintage.com", "senha-errada")
	assert.Equal(t, apierror.KindCredentials, apierror.KindOf(err))
	assert.NotEqual(t, StateAuthenticated, boot.State())

	stored, _ := store.Get()
	assert.Empty(t, stored)
}

func TestLogin_CamposVazios(t *testing.T) {
	boot := buildSession(t, "http://127.0.0.1:1", NewMemoryStore(""))

	err := boot.Login(context.Background(), "  ", "x")
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))

	err = boot.Login(context.Background(), "a@b.c", "")
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestBootstrap_SemToken(t *testing.T) {
	backend := &fakeBackend{token: "irrelevante"}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	boot := buildSession(t, srv.URL, NewMemoryStore(""))
	assert.Equal(t, StateUnauthenticated, boot.Bootstrap(context.Background()))
	assert.Equal(t, int32(0), backend.requests.Load(), "sem token não há validação remota")
}

func TestBootstrap_TokenJaExpirado(t *testing.T) {
	backend := &fakeBackend{token: "irrelevante"}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	store := NewMemoryStore(signedToken(t, -time.Hour))
	boot := buildSession(t, srv.URL, store)

	assert.Equal(t, StateUnauthenticated, boot.Bootstrap(context.Background()))
	assert.Equal(t, int32(0), backend.requests.Load(), "token vencido nem vai à rede")

	stored, _ := store.Get()
	assert.Empty(t, stored, "token vencido é descartado")
}

func TestBootstrap_TokenRejeitadoPeloServidor(t *testing.T) {
	backend := &fakeBackend{token: signedToken(t, time.Hour)}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	// Well-formed and unexpired, but not the token the backend accepts.
	store := NewMemoryStore(signedToken(t, 2*time.Hour))
	boot := buildSession(t, srv.URL, store)

	assert.Equal(t, StateUnauthenticated, boot.Bootstrap(context.Background()))

	stored, _ := store.Get()
	assert.Empty(t, stored, "o 401 da validação derruba o token")
}

func TestBootstrap_FalhaDeRedeNaoMantemSessao(t *testing.T) {
	store := NewMemoryStore(signedToken(t, time.Hour))
	boot := buildSession(t, "http://127.0.0.1:1", store)

	assert.Equal(t, StateUnauthenticated, boot.Bootstrap(context.Background()))
}

func TestBootstrap_RodaUmaVezSo(t *testing.T) {
	backend := &fakeBackend{token: signedToken(t, time.Hour)}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	store := NewMemoryStore(backend.token)
	boot := buildSession(t, srv.URL, store)

	require.Equal(t, StateAuthenticated, boot.Bootstrap(context.Background()))
	validations := backend.requests.Load()

	assert.Equal(t, StateAuthenticated, boot.Bootstrap(context.Background()))
	assert.Equal(t, validations, backend.requests.Load(), "a segunda chamada só reporta o estado")
}

func TestLogout_Idempotente(t *testing.T) {
	store := NewMemoryStore("algum-token")
	boot := buildSession(t, "http://127.0.0.1:1", store)

	boot.Logout()
	boot.Logout()

	assert.Equal(t, StateUnauthenticated, boot.State())
	stored, _ := store.Get()
	assert.Empty(t, stored)
	assert.ErrorIs(t, boot.RequireAuthenticated(), ErrNotAuthenticated)
}

func TestResetPassword_ValidacaoLocal(t *testing.T) {
	boot := buildSession(t, "http://127.0.0.1:1", NewMemoryStore(""))

	_, err := boot.ResetPassword(context.Background(), "12345", "novasenha")
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))

	_, err = boot.ResetPassword(context.Background(), "abc123", "novasenha")
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))

	_, err = boot.ResetPassword(context.Background(), "123456", "abc")
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))

	_, err = boot.RequestPasswordReset(context.Background(), "   ")
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestTokenExpired(t *testing.T) {
	assert.True(t, tokenExpired(signedToken(t, -time.Minute)))
	assert.False(t, tokenExpired(signedToken(t, time.Minute)))
	// Unparseable tokens are settled by the validation call, not locally.
	assert.False(t, tokenExpired("não-é-um-jwt"))
}
