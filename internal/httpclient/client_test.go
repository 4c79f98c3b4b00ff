package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"modavintage/internal/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubStore struct{ token string }

func (s *stubStore) Get() (string, error) { return s.token, nil }

func newTestClient(baseURL string, store TokenStore, hook func()) *Client {
	if hook == nil {
		hook = func() {}
	}
	return New(baseURL, 2*time.Second, store, hook)
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestDo_AnexaTokenECabecalhos(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	store := &stubStore{token: "tok-1"}
	c := newTestClient(srv.URL, store, nil)

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.Get(context.Background(), "/clientes", nil, &out))
	assert.True(t, out.OK)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)

	// The token is re-read on every request, never cached.
	store.token = "tok-2"
	require.NoError(t, c.Get(context.Background(), "/clientes", nil, nil))
	assert.Equal(t, "Bearer tok-2", gotAuth)
}

func TestDo_SemTokenNaoEnviaAuthorization(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, &stubStore{}, nil)
	require.NoError(t, c.Get(context.Background(), "/auth/login", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestDo_401ForaDoLogin_DisparaLogoutUmaVez(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"erro":"Token expirado"}`))
	}))
	defer srv.Close()

	var fired atomic.Int32
	c := newTestClient(srv.URL, &stubStore{token: "morto"}, func() { fired.Add(1) })

	err1 := c.Get(context.Background(), "/clientes", nil, nil)
	err2 := c.Get(context.Background(), "/produtos", nil, nil)

	assert.Equal(t, apierror.KindSessionInvalid, apierror.KindOf(err1))
	assert.Equal(t, apierror.KindSessionInvalid, apierror.KindOf(err2))
	assert.Equal(t, "Token expirado", apierror.UserMessage(err1))

	// However many calls come back 401, the handler runs once.
	assert.Equal(t, int32(1), fired.Load())

	// A new login window re-arms the notification.
	c.ResetSessionGuard()
	_ = c.Get(context.Background(), "/clientes", nil, nil)
	assert.Equal(t, int32(2), fired.Load())
}

func TestDo_401NoLogin_EhCredenciais(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	var fired atomic.Int32
	c := newTestClient(srv.URL, &stubStore{}, func() { fired.Add(1) })

	err := c.Post(context.Background(), LoginPath, map[string]string{"email": "a@b.c", "senha": "x"}, nil)
	assert.Equal(t, apierror.KindCredentials, apierror.KindOf(err))
	assert.Equal(t, int32(0), fired.Load(), "credenciais erradas não derrubam a sessão")
}

func TestDo_ErroDeValidacaoComMensagem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"erro":"Nome é obrigatório"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, &stubStore{}, nil)
	err := c.Post(context.Background(), "/clientes", map[string]string{}, nil)

	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
	assert.Equal(t, "Nome é obrigatório", apierror.UserMessage(err))
}

func TestDo_FalhaDeRede(t *testing.T) {
	// Nothing listens here.
	c := newTestClient("http://127.0.0.1:1", &stubStore{}, nil)

	err := c.Get(context.Background(), "/clientes", nil, nil)
	assert.True(t, apierror.IsNetwork(err))
	assert.Equal(t, "Não foi possível conectar ao servidor.", apierror.UserMessage(err))
}

func TestDo_BreakerAbreAposFalhasConsecutivas(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1", &stubStore{}, nil)

	for i := 0; i < 4; i++ {
		err := c.Get(context.Background(), "/clientes", nil, nil)
		require.True(t, apierror.IsNetwork(err))
	}

	// The breaker is open now: the call fails fast without touching the
	// network.
	start := time.Now()
	err := c.Get(context.Background(), "/clientes", nil, nil)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.True(t, apierror.IsNetwork(err))
	assert.Less(t, time.Since(start), time.Second)
}

func TestDo_RespostaHTTPFechaOBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, &stubStore{}, nil)
	c.breaker.OnFailure()
	c.breaker.OnFailure()
	c.breaker.OnFailure()

	// A 401 is still an answer: the server is reachable.
	_ = c.Get(context.Background(), "/clientes", nil, nil)
	assert.True(t, c.breaker.Allow())
}
