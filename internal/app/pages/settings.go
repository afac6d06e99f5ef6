package pages

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/astro-web3/hrdesk-console/internal/domain/hr"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
)

// MaxFaviconSize is the largest favicon upload accepted, 1 MiB.
const MaxFaviconSize = 1 << 20

//nolint:gochecknoglobals // fixed allow-list
var faviconTypes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/svg+xml",
	"image/x-icon",
	"image/vnd.microsoft.icon",
}

// BrandingRefresher re-reads branding after a change that affects it.
type BrandingRefresher interface {
	Refresh(ctx context.Context) error
}

type SettingsView struct {
	Settings    []hr.SystemSetting
	SiteTitle   string
	SiteFavicon string
}

type Settings struct {
	api      Caller
	branding BrandingRefresher
}

func NewSettings(c Caller, branding BrandingRefresher) *Settings {
	return &Settings{api: c, branding: branding}
}

func (s *Settings) Load(ctx context.Context) (*SettingsView, error) {
	var settings []hr.SystemSetting
	if err := loadAll(ctx, get(s.api, api.SettingsPath, &settings)); err != nil {
		return nil, err
	}

	view := &SettingsView{Settings: settings}
	for _, setting := range settings {
		switch setting.SettingKey {
		case hr.SettingSiteTitle:
			view.SiteTitle = deref(setting.SettingValue)
		case hr.SettingSiteFavicon:
			view.SiteFavicon = deref(setting.SettingValue)
		}
	}
	return view, nil
}

// Update stores a setting value. Changing the site title refreshes branding.
func (s *Settings) Update(ctx context.Context, key, value string) (*hr.SystemSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, invalid("setting key is required")
	}

	var updated hr.SystemSetting
	if err := s.api.Call(ctx, http.MethodPut, api.SettingPath(key), hr.SettingUpdate{Value: value}, &updated); err != nil {
		return nil, err
	}

	if key == hr.SettingSiteTitle {
		s.refresh(ctx)
	}
	return &updated, nil
}

// UploadFavicon checks size and sniffed type before sending the file.
func (s *Settings) UploadFavicon(ctx context.Context, filename string, content []byte) (*hr.FaviconUpload, error) {
	if len(content) == 0 {
		return nil, invalid("choose a file to upload")
	}
	if len(content) > MaxFaviconSize {
		return nil, invalid("file must not exceed 1MB")
	}
	detected := mimetype.Detect(content)
	if !mimetype.EqualsAny(detected.String(), faviconTypes...) {
		return nil, invalid("unsupported favicon type %s", detected.String())
	}

	var out hr.FaviconUpload
	if err := s.api.Upload(ctx, api.FaviconUploadPath, api.FaviconUploadField, filename,
		bytes.NewReader(content), &out); err != nil {
		return nil, err
	}

	s.refresh(ctx)
	return &out, nil
}

func (s *Settings) DeleteFavicon(ctx context.Context) error {
	if err := s.api.Call(ctx, http.MethodDelete, api.FaviconPath, nil, nil); err != nil {
		return err
	}
	s.refresh(ctx)
	return nil
}

// refresh failures are logged by the branding service; the saved setting
// stands either way.
func (s *Settings) refresh(ctx context.Context) {
	if s.branding != nil {
		_ = s.branding.Refresh(ctx)
	}
}
