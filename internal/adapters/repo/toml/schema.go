package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Variants []variantSchema `toml:"variants"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported variants schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type variantSchema struct {
	Name        string `toml:"name"`
	URL         string `toml:"url"`
	User        string `toml:"user,omitempty"`
	PasswordRef string `toml:"password_ref,omitempty"`
	Protocol    string `toml:"protocol,omitempty"`
	Language    string `toml:"language,omitempty"`
}
