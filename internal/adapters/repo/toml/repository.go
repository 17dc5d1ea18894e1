package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

const (
	variantsConfigFile = "variants.toml"
	variantsFileMode   = 0o600
	variantsDirMode    = 0o700
	tempFilePattern    = ".variants-*.toml.tmp"
)

// Repository persists variant specs in a versioned TOML file.
type Repository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.VariantRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(KeyVariantsPath)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, configDir, variantsConfigFile)
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Repository{path: path, mu: lockForPath(path)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Save(ctx context.Context, spec domain.VariantSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(spec)
	updated := false
	for i := range file.Variants {
		if file.Variants[i].Name == encoded.Name {
			file.Variants[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Variants = append(file.Variants, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) Delete(ctx context.Context, name domain.VariantName) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Variants[:0]
	for _, entry := range file.Variants {
		if entry.Name != string(name) {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(file.Variants) {
		return fmt.Errorf("%w: %q", domain.ErrVariantNotFound, name)
	}
	file.Variants = kept

	return r.writeSchema(file)
}

func (r *Repository) GetByName(ctx context.Context, name domain.VariantName) (domain.VariantSpec, error) {
	if err := ctx.Err(); err != nil {
		return domain.VariantSpec{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.VariantSpec{}, err
	}

	for _, entry := range file.Variants {
		if entry.Name == string(name) {
			return fromSchema(entry), nil
		}
	}

	return domain.VariantSpec{}, domain.ErrVariantNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.VariantSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	specs := make([]domain.VariantSpec, 0, len(file.Variants))
	for _, entry := range file.Variants {
		specs = append(specs, fromSchema(entry))
	}

	return specs, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read variants file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode variants file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), variantsDirMode); err != nil {
		return fmt.Errorf("create variants directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode variants file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp variants file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp variants file: %w", err)
	}

	if err := tempFile.Chmod(variantsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp variants file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp variants file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace variants file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve variants path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(spec domain.VariantSpec) variantSchema {
	return variantSchema{
		Name:        string(spec.Name),
		URL:         spec.BaseURL,
		User:        spec.User,
		PasswordRef: spec.PasswordRef,
		Protocol:    string(spec.Protocol),
		Language:    spec.Language,
	}
}

func fromSchema(entry variantSchema) domain.VariantSpec {
	protocol := domain.Protocol(entry.Protocol)
	if protocol == "" {
		protocol = domain.ProtocolFormRun
	}

	return domain.VariantSpec{
		Name:        domain.VariantName(entry.Name),
		BaseURL:     entry.URL,
		User:        entry.User,
		PasswordRef: entry.PasswordRef,
		Protocol:    protocol,
		Language:    entry.Language,
	}
}
