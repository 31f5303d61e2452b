// Package catalog loads the venture catalog from YAML and keeps the
// current snapshot available while the file is edited on disk.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/ventures/internal/portfolio"
)

//go:embed ventures.yaml
var defaultCatalog []byte

type file struct {
	Ventures []portfolio.Venture `yaml:"ventures"`
}

// Default returns the catalog compiled into the binary.
func Default() (*portfolio.Catalog, error) {
	c, err := Parse(defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded catalog: %w", err)
	}
	return c, nil
}

// Load reads a catalog file. An empty path means the embedded catalog.
func Load(path string) (*portfolio.Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte) (*portfolio.Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return portfolio.NewCatalog(f.Ventures)
}
