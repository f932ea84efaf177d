// Package brief loads the YAML campaign brief that seeds a new project.
package brief

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"shortcast/internal/script"
	"shortcast/internal/services"
)

// Brief describes one product campaign to turn into a video.
type Brief struct {
	Name        string   `yaml:"name"`
	Product     string   `yaml:"product"`
	LandingURL  string   `yaml:"landing_url"`
	Style       string   `yaml:"style"`
	Language    string   `yaml:"language"`
	SellingPts  []string `yaml:"selling_points"`
	Audience    string   `yaml:"audience"`
	AutoUpload  bool     `yaml:"auto_upload"`
	Description string   `yaml:"description"`
}

// Load reads and validates a brief file.
func Load(path string) (*Brief, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "brief", "load", fmt.Sprintf("read brief file %s", path), err)
	}
	var b Brief
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "brief", "load", fmt.Sprintf("parse brief file %s", path), err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks required fields and known values.
func (b *Brief) Validate() error {
	if strings.TrimSpace(b.Product) == "" {
		return services.Wrap(services.ErrValidation, "brief", "validate", "product is required", nil)
	}
	if b.Style != "" {
		if _, ok := script.ParseStyle(b.Style); !ok {
			return services.Wrap(services.ErrValidation, "brief", "validate", fmt.Sprintf("unknown style %q", b.Style), nil)
		}
	}
	return nil
}

// ProjectName returns the explicit name or one derived from the product.
func (b *Brief) ProjectName() string {
	if name := strings.TrimSpace(b.Name); name != "" {
		return name
	}
	return strings.TrimSpace(b.Product)
}

// ScriptStyle resolves the configured style, defaulting to educational.
func (b *Brief) ScriptStyle() script.Style {
	if b.Style == "" {
		return script.StyleEducational
	}
	style, ok := script.ParseStyle(b.Style)
	if !ok {
		return script.StyleEducational
	}
	return style
}
