package knowledge

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	apperrors "github.com/home-assistant-tools/automation-lint-go/internal/errors"
)

// FileCapabilityProvider reads an entity snapshot from a JSON file in the
// GET /api/states shape, for fully offline runs.
type FileCapabilityProvider struct {
	path string
}

// NewFileCapabilityProvider creates a provider for the given file.
func NewFileCapabilityProvider(path string) *FileCapabilityProvider {
	return &FileCapabilityProvider{path: path}
}

// FetchStates loads and decodes the snapshot file.
func (p *FileCapabilityProvider) FetchStates(_ context.Context) ([]EntityState, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, apperrors.ErrFileRead(p.path, err)
	}
	var states []EntityState
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, apperrors.Create(apperrors.CodeResponseJSON).WithPath(p.path).WithCause(err)
	}
	return states, nil
}

// FileSchemaProvider reads declared state vocabularies from a YAML file
// mapping entity ids to state lists:
//
//	sensor.washer_status: [idle, washing, rinsing, spinning]
type FileSchemaProvider struct {
	path string
}

// NewFileSchemaProvider creates a provider for the given file. An empty path
// yields a provider with no declarations.
func NewFileSchemaProvider(path string) *FileSchemaProvider {
	return &FileSchemaProvider{path: path}
}

// DeclaredStates loads and parses the schema file.
func (p *FileSchemaProvider) DeclaredStates() (map[string][]string, error) {
	if p.path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Create(apperrors.CodeFileNotFound).WithPath(p.path).WithCause(err)
		}
		return nil, apperrors.ErrFileRead(p.path, err)
	}
	var out map[string][]string
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, apperrors.ErrYAMLSyntax(p.path, err)
	}
	return out, nil
}

// FileCorrectionStore persists user-confirmed corrections in a YAML file
// with the same entity-to-states shape as the schema file. Writes rewrite
// the whole file; the store serializes them.
type FileCorrectionStore struct {
	mu   sync.Mutex
	path string
}

// NewFileCorrectionStore creates a store at the given path. An empty path
// yields a store that loads nothing and drops writes.
func NewFileCorrectionStore(path string) *FileCorrectionStore {
	return &FileCorrectionStore{path: path}
}

// Load reads the corrections file. A missing file is an empty store.
func (s *FileCorrectionStore) Load() (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileCorrectionStore) load() (map[string][]string, error) {
	if s.path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]string{}, nil
		}
		return nil, apperrors.ErrFileRead(s.path, err)
	}
	var out map[string][]string
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, apperrors.ErrYAMLSyntax(s.path, err)
	}
	return out, nil
}

// Add records one confirmed state and rewrites the file. Adding is
// idempotent.
func (s *FileCorrectionStore) Add(entityID, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return nil
	}
	current, err := s.load()
	if err != nil {
		return err
	}
	if current == nil {
		current = map[string][]string{}
	}
	for _, existing := range current[entityID] {
		if existing == state {
			return nil
		}
	}
	current[entityID] = append(current[entityID], state)
	sort.Strings(current[entityID])

	data, err := yaml.Marshal(current)
	if err != nil {
		return apperrors.Create(apperrors.CodeConfigInvalid).WithPath(s.path).WithCause(err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return apperrors.ErrFileRead(s.path, err)
	}
	return nil
}
