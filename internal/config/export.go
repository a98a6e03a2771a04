package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ExportYAML writes the configuration as YAML, defaults included.
func (c *Configuration) ExportYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return encoder.Close()
}
