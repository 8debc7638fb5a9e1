package formserver

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
)

//go:embed assets/*
var embeddedAssets embed.FS

const (
	formTemplateName = "form.html.tmpl"
	styleName        = "form.css"
)

// AssetResolver maps asset names to URLs for the form HTML.
type AssetResolver struct {
	baseURL string
}

// newAssetResolver creates a resolver for embedded or externally hosted assets.
func newAssetResolver(baseURL string) AssetResolver {
	return AssetResolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// URL resolves an asset file name against the base URL.
func (r AssetResolver) URL(name string) string {
	if r.baseURL == "" {
		return "/assets/" + name
	}
	return r.baseURL + "/" + name
}

// embeddedAssetsFS returns the file system rooted at the embedded assets directory.
func embeddedAssetsFS() (fs.FS, error) {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return nil, fmt.Errorf("formserver: open embedded assets: %w", err)
	}
	return sub, nil
}

// loadFormTemplate parses the embedded form template.
func loadFormTemplate() (*template.Template, error) {
	tmpl, err := template.ParseFS(embeddedAssets, "assets/"+formTemplateName)
	if err != nil {
		return nil, fmt.Errorf("formserver: parse form template: %w", err)
	}
	return tmpl, nil
}
