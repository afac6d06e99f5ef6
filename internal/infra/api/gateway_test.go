package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-web3/hrdesk-console/internal/domain/credential"
	"github.com/astro-web3/hrdesk-console/internal/domain/hr"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
)

func newStore(t *testing.T, token string) *credential.Memory {
	t.Helper()
	store := credential.NewMemory()
	if token != "" {
		require.NoError(t, store.Set(context.Background(), token))
	}
	return store
}

func TestCall_SendsBearerWhenTokenStored(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		assert.Equal(t, "/api/v1/departments/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"name":"Sales"}]`)
	}))
	defer srv.Close()

	gw := api.NewGateway(srv.URL+"/api/v1/", newStore(t, "abc"))

	var departments []hr.Department
	err := gw.Call(context.Background(), http.MethodGet, api.DepartmentsPath, nil, &departments)

	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	require.Len(t, departments, 1)
	assert.Equal(t, "Sales", departments[0].Name)
}

func TestCall_NoAuthorizationWithoutToken(t *testing.T) {
	var sawAuth atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		sawAuth.Store(present)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	for name, gw := range map[string]*api.Gateway{
		"empty store": api.NewGateway(srv.URL, credential.NewMemory()),
		"nil store":   api.NewGateway(srv.URL, nil),
		"anonymous":   api.NewGateway(srv.URL, newStore(t, "abc")).Anonymous(),
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, gw.Call(context.Background(), http.MethodGet, api.BrandingPath, nil, nil))
			assert.False(t, sawAuth.Load())
		})
	}
}

func TestCall_ErrorCarriesServerText(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "text body", status: http.StatusUnauthorized, body: "bad credentials", message: "bad credentials"},
		{name: "json body kept verbatim", status: http.StatusBadRequest, body: `{"detail":"nope"}`, message: `{"detail":"nope"}`},
		{name: "empty body", status: http.StatusInternalServerError, body: "", message: "request failed"},
		{name: "blank body", status: http.StatusForbidden, body: "  \n", message: "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			gw := api.NewGateway(srv.URL, newStore(t, "abc"))
			err := gw.Call(context.Background(), http.MethodGet, api.AuditPath, nil, nil)

			var reqErr *api.RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tt.status, reqErr.Status)
			assert.Equal(t, tt.message, reqErr.Message)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, tt.status, api.StatusOf(err))
		})
	}
}

func TestCall_NoRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	gw := api.NewGateway(srv.URL, nil)
	err := gw.Call(context.Background(), http.MethodGet, api.OrgPath, nil, nil)

	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestCall_SendsJSONBody(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/7", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		_, _ = io.WriteString(w, `{"id":7,"username":"kim","role":"hr"}`)
	}))
	defer srv.Close()

	gw := api.NewGateway(srv.URL, newStore(t, "abc"))

	var user hr.User
	err := gw.Call(context.Background(), http.MethodPatch, api.UserPath(7), hr.RoleUpdate{Role: "hr"}, &user)

	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"hr"}`, body)
	assert.Equal(t, "hr", user.Role)
}

func TestCall_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := api.NewGateway(srv.URL, nil).Call(ctx, http.MethodGet, api.AuditPath, nil, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, api.StatusOf(err))
}

func TestLogin_StoresAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded"))
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "kim", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))
		_, _ = io.WriteString(w, `{"access_token":"fresh","token_type":"bearer"}`)
	}))
	defer srv.Close()

	store := newStore(t, "old")
	gw := api.NewGateway(srv.URL, store)

	require.NoError(t, gw.Login(context.Background(), "kim", "secret"))

	token, ok := store.Get(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "fresh", token)
}

func TestLogin_FailureKeepsPriorCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Incorrect username or password"}`)
	}))
	defer srv.Close()

	store := newStore(t, "old")
	gw := api.NewGateway(srv.URL, store)

	err := gw.Login(context.Background(), "kim", "wrong")

	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.Status)
	assert.Equal(t, "invalid login credentials", reqErr.Message)

	token, ok := store.Get(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "old", token)
}

func TestLogin_MissingTokenInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	store := credential.NewMemory()
	err := api.NewGateway(srv.URL, store).Login(context.Background(), "kim", "secret")

	require.ErrorIs(t, err, api.ErrMissingAccessToken)
	_, ok := store.Get(context.Background())
	assert.False(t, ok)
}

func TestUpload_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		file, header, err := r.FormFile(api.FaviconUploadField)
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		raw, _ := io.ReadAll(file)
		assert.Equal(t, "icon.png", header.Filename)
		assert.Equal(t, "PNGDATA", string(raw))
		_, _ = io.WriteString(w, `{"url":"/static/favicon-1.png"}`)
	}))
	defer srv.Close()

	gw := api.NewGateway(srv.URL, newStore(t, "abc"))

	var out hr.FaviconUpload
	err := gw.Upload(context.Background(), api.FaviconUploadPath, api.FaviconUploadField, "icon.png",
		strings.NewReader("PNGDATA"), &out)

	require.NoError(t, err)
	assert.Equal(t, "/static/favicon-1.png", out.URL)
}

func TestWithCredentials_SharesClientNotToken(t *testing.T) {
	var gotAuth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	base := api.NewGateway(srv.URL, newStore(t, "first"))
	bound := base.WithCredentials(newStore(t, "second"))

	require.NoError(t, bound.Call(context.Background(), http.MethodGet, api.MePath, nil, nil))
	assert.Equal(t, "Bearer second", gotAuth.Load())

	require.NoError(t, base.Call(context.Background(), http.MethodGet, api.MePath, nil, nil))
	assert.Equal(t, "Bearer first", gotAuth.Load())
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/phonebook/?q=", api.PhonebookPath(""))
	assert.Equal(t, "/phonebook/?q=%D0%98%D0%B2%D0%B0%D0%BD+P", api.PhonebookPath("Иван P"))
	assert.Equal(t, "/birthdays/?month=3", api.BirthdaysPath(3))
	assert.Equal(t, "/hr-requests/4/process", api.HRRequestProcessPath(4))
	assert.Equal(t, "/users/9/reset-password", api.UserPasswordResetPath(9))
	assert.Equal(t, "/settings/site_title", api.SettingPath("site_title"))
}
