package config

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const fileHeader = `educats configuration.
Roots are resolved against the directory educats runs in.
Every key can be overridden with EDUCATS_<SECTION>_<KEY>, e.g. EDUCATS_MODULES_DEPTH=2.
`

// Render encodes cfg in the given format with a leading comment block.
func Render(cfg *Config, format Format) ([]byte, error) {
	var body []byte
	var err error

	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		err = enc.Encode(cfg)
		body = buf.Bytes()
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(cfg)
		if closeErr := enc.Close(); err == nil {
			err = closeErr
		}
		body = buf.Bytes()
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %s config: %w", format, err)
	}

	var out bytes.Buffer
	for _, line := range bytes.Split([]byte(fileHeader), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		out.WriteString("# ")
		out.Write(line)
		out.WriteString("\n")
	}
	out.WriteString("\n")
	out.Write(body)
	return out.Bytes(), nil
}

// RenderDefault encodes DefaultConfig in the given format.
func RenderDefault(format Format) ([]byte, error) {
	return Render(DefaultConfig(), format)
}
