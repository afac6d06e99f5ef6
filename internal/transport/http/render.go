package http

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/benbjohnson/hashfs"
	"github.com/gin-gonic/gin"

	"github.com/astro-web3/hrdesk-console/internal/domain/access"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const staticPrefix = "/static/"

// Assets serves the bundled stylesheet and default favicon under
// content-hashed names.
type Assets struct {
	fs *hashfs.FS
}

func NewAssets() *Assets {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return &Assets{fs: hashfs.NewFS(sub)}
}

// Href returns the cache-busting URL of a bundled asset.
func (a *Assets) Href(name string) string {
	return staticPrefix + a.fs.HashName(name)
}

func (a *Assets) Handler() http.Handler {
	return http.StripPrefix(strings.TrimSuffix(staticPrefix, "/"), hashfs.FileServer(a.fs))
}

// DefaultFavicon is the icon used until branding provides one.
func (a *Assets) DefaultFavicon() string {
	return a.Href("favicon.svg")
}

func parseTemplates(assets *Assets) *template.Template {
	return template.Must(template.New("console").Funcs(template.FuncMap{
		"asset":  assets.Href,
		"icon":   iconGlyph,
		"text":   optionalText,
		"id":     optionalID,
		"picked": picked,
	}).ParseFS(templateFS, "templates/*.html"))
}

type navLink struct {
	Label  string
	Path   string
	Icon   string
	Active bool
}

// layoutView is shared by every rendered page.
type layoutView struct {
	Title         string
	Brand         string
	FaviconHref   string
	Heading       string
	Nav           []navLink
	Authenticated bool
	SigningIn     bool
	Role          string
	Elevated      bool
	Theme         string
	Notice        string
	Error         string
	Page          any
}

func (h *Handler) layout(c *gin.Context, heading string) layoutView {
	snap := h.branding.Current()
	view := layoutView{
		Title:       snap.Title,
		Brand:       snap.Title,
		FaviconHref: snap.FaviconHref,
		Heading:     heading,
	}
	if heading != "" {
		view.Title = heading + " · " + snap.Title
	}

	if dark, chosen := darkMode(c); chosen {
		view.Theme = "light"
		if dark {
			view.Theme = "dark"
		}
	}

	scope := scopeFrom(c)
	if scope == nil {
		return view
	}

	state := scope.state
	view.Authenticated = state.Authenticated
	view.Role = state.Role.String()
	view.Elevated = state.Access.Elevated()
	view.Nav = navLinks(state.Access.Navigation(), c.Request.URL.Path)
	return view
}

func navLinks(items []access.Item, current string) []navLink {
	links := make([]navLink, 0, len(items))
	for _, item := range items {
		active := current == item.Path ||
			(item.Path != "/" && strings.HasPrefix(current, item.Path+"/"))
		links = append(links, navLink{
			Label:  item.Label,
			Path:   item.Path,
			Icon:   item.Icon,
			Active: active,
		})
	}
	return links
}

//nolint:gochecknoglobals // icon names map onto fixed glyphs
var iconGlyphs = map[string]string{
	"phone":          "☎",
	"calendar-days":  "📅",
	"git-branch":     "⑂",
	"clipboard-list": "📋",
	"shield-check":   "🛡",
	"settings":       "⚙",
	"users":          "👥",
}

func iconGlyph(name string) string {
	if glyph, ok := iconGlyphs[name]; ok {
		return glyph
	}
	return "•"
}

func optionalText(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalID(id *int) string {
	if id == nil {
		return ""
	}
	return strconv.Itoa(*id)
}

// picked reports whether an option with value id is the current selection.
func picked(current *int, id int) bool {
	return current != nil && *current == id
}
