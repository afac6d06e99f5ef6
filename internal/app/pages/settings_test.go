package pages_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-web3/hrdesk-console/internal/app/pages"
	"github.com/astro-web3/hrdesk-console/internal/domain/hr"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
)

type countingRefresher struct {
	calls int
	err   error
}

func (c *countingRefresher) Refresh(context.Context) error {
	c.calls++
	return c.err
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x10\x00\x00\x00\x10\x08\x06\x00\x00\x00")

func TestSettings_Load(t *testing.T) {
	fake := newFakeAPI().reply(http.MethodGet, api.SettingsPath, []hr.SystemSetting{
		{ID: 1, SettingKey: "site_title", SettingValue: ptr("Acme"), SettingType: "string"},
		{ID: 2, SettingKey: "site_favicon", SettingValue: nil, SettingType: "string"},
	})

	view, err := pages.NewSettings(fake, nil).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Acme", view.SiteTitle)
	assert.Empty(t, view.SiteFavicon)
	assert.Len(t, view.Settings, 2)
}

func TestSettings_UpdateSiteTitleRefreshesBranding(t *testing.T) {
	fake := newFakeAPI().
		reply(http.MethodPut, api.SettingPath("site_title"), hr.SystemSetting{SettingKey: "site_title"}).
		reply(http.MethodPut, api.SettingPath("support_email"), hr.SystemSetting{SettingKey: "support_email"})
	refresher := &countingRefresher{err: errors.New("branding endpoint down")}
	s := pages.NewSettings(fake, refresher)

	_, err := s.Update(context.Background(), "site_title", "Acme People")
	require.NoError(t, err, "a failed branding refresh does not fail the save")
	assert.Equal(t, 1, refresher.calls)

	puts := fake.callsTo(http.MethodPut, api.SettingPath("site_title"))
	require.Len(t, puts, 1)
	assert.JSONEq(t, `{"value":"Acme People"}`, bodyJSON(puts[0].Body))

	_, err = s.Update(context.Background(), "support_email", "help@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, refresher.calls)
}

func TestSettings_UploadFavicon(t *testing.T) {
	fake := newFakeAPI().reply("UPLOAD", api.FaviconUploadPath, hr.FaviconUpload{URL: "/static/favicon.png"})
	refresher := &countingRefresher{}

	out, err := pages.NewSettings(fake, refresher).UploadFavicon(context.Background(), "icon.png", pngHeader)

	require.NoError(t, err)
	assert.Equal(t, "/static/favicon.png", out.URL)
	assert.Equal(t, 1, refresher.calls)
	uploads := fake.callsTo("UPLOAD", api.FaviconUploadPath)
	require.Len(t, uploads, 1)
	assert.Equal(t, pngHeader, uploads[0].Body)
}

func TestSettings_UploadFaviconRejectedBeforeSending(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{name: "empty", content: nil},
		{name: "too large", content: append(bytes.Clone(pngHeader), make([]byte, pages.MaxFaviconSize)...)},
		{name: "not an image", content: []byte("plain text, not an icon")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeAPI()

			_, err := pages.NewSettings(fake, nil).UploadFavicon(context.Background(), "x", tt.content)

			var vErr *pages.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Empty(t, fake.recorded())
		})
	}
}

func TestSettings_DeleteFavicon(t *testing.T) {
	fake := newFakeAPI().reply(http.MethodDelete, api.FaviconPath, nil)
	refresher := &countingRefresher{}

	require.NoError(t, pages.NewSettings(fake, refresher).DeleteFavicon(context.Background()))
	assert.Equal(t, 1, refresher.calls)
}
