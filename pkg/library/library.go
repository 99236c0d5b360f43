// Package library persists strain profiles in a single YAML document
// ({strains, updatedAt}) and answers filter queries over them.
//
// Storage is not trusted to preserve the profile shape across versions:
// every profile read from disk goes through strains.Normalize.
package library

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/agentstation/strainmap/pkg/constants"
	"github.com/agentstation/strainmap/pkg/errors"
	"github.com/agentstation/strainmap/pkg/logging"
	"github.com/agentstation/strainmap/pkg/strains"
)

// Document is the stored shape.
type Document struct {
	Strains   []strains.Profile `json:"strains" yaml:"strains"`
	UpdatedAt string            `json:"updatedAt" yaml:"updatedAt"`
}

// rawDocument is decoded first so that any profile shape can be normalized.
type rawDocument struct {
	Strains   []map[string]any `json:"strains" yaml:"strains"`
	UpdatedAt string           `json:"updatedAt" yaml:"updatedAt"`
}

// Store is a file-backed strain library. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	path   string
	clock  strains.Clock
	seed   bool
	logger *zerolog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithClock sets the clock for updatedAt and createdAt stamps.
func WithClock(clock strains.Clock) Option {
	return func(s *Store) error {
		if clock == nil {
			return &errors.ValidationError{Field: "clock", Message: "cannot be nil"}
		}
		s.clock = clock
		return nil
	}
}

// WithSeed controls whether an empty library falls back to the built-in profiles.
func WithSeed(enabled bool) Option {
	return func(s *Store) error {
		s.seed = enabled
		return nil
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		s.logger = logger
		return nil
	}
}

// New creates a store for the document at path. A leading "~" expands to
// the home directory.
func New(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &errors.ValidationError{Field: "path", Message: "cannot be empty"}
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path:   expanded,
		clock:  utc.Now,
		seed:   true,
		logger: logging.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewConfigError("library", "cannot resolve home directory", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Load reads all profiles. A missing or blank document yields the seed
// profiles when seeding is enabled; a saved empty list stays empty.
func (s *Store) Load(ctx context.Context) ([]strains.Profile, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Strains, nil
}

// Document reads the stored document with every profile normalized.
func (s *Store) Document(ctx context.Context) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read()
}

func (s *Store) read() (Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return Document{}, errors.WrapIO("read", s.path, err)
	}

	var raw rawDocument
	blank := len(strings.TrimSpace(string(data))) == 0
	if !blank {
		// JSON documents are valid YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Document{}, errors.WrapParse("yaml", s.path, err)
		}
	}

	doc := Document{UpdatedAt: raw.UpdatedAt, Strains: make([]strains.Profile, 0, len(raw.Strains))}
	for _, candidate := range raw.Strains {
		doc.Strains = append(doc.Strains, strains.Normalize(candidate, strains.WithClock(s.clock)))
	}
	if blank && s.seed {
		s.logger.Debug().Str("path", s.path).Msg("Library empty, using seed profiles")
		for _, p := range Seeds() {
			doc.Strains = append(doc.Strains, strains.Normalize(p))
		}
	}
	return doc, nil
}

// Save replaces the stored profiles. Every profile is normalized and gets
// an id when it has none.
func (s *Store) Save(ctx context.Context, profiles []strains.Profile) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(profiles)
}

func (s *Store) write(profiles []strains.Profile) (Document, error) {
	doc := Document{
		Strains:   make([]strains.Profile, 0, len(profiles)),
		UpdatedAt: s.clock().Format(constants.TimeFormatISO8601),
	}
	for _, p := range profiles {
		doc.Strains = append(doc.Strains, s.prepare(p))
	}

	data, err := yaml.MarshalWithOptions(doc,
		yaml.Indent(2),
		yaml.IndentSequence(true),
	)
	if err != nil {
		return Document{}, errors.WrapParse("yaml", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return Document{}, errors.WrapIO("create", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, ".strains_*.yaml")
	if err != nil {
		return Document{}, errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return Document{}, errors.WrapIO("write", tempPath, err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return Document{}, errors.WrapIO("write", tempPath, err)
	}
	if err := os.Chmod(tempPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tempPath)
		return Document{}, errors.WrapIO("chmod", tempPath, err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return Document{}, errors.WrapIO("rename", s.path, err)
	}

	s.logger.Debug().
		Str("path", s.path).
		Int("strains", len(doc.Strains)).
		Msg("Library saved")
	return doc, nil
}

func (s *Store) prepare(p strains.Profile) strains.Profile {
	p = strains.Normalize(p, strains.WithClock(s.clock))
	if p.ID == "" {
		p.ID = Slugify(p.Name, s.clock)
	}
	return p
}

// Upsert stores one profile, replacing the entry with the same id or
// prepending it. The stored profile is returned.
func (s *Store) Upsert(ctx context.Context, profile strains.Profile) (strains.Profile, error) {
	if err := ctx.Err(); err != nil {
		return strains.Profile{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return strains.Profile{}, err
	}

	profile = strains.Normalize(profile, strains.WithoutTimestamp())
	if profile.ID == "" {
		profile.ID = Slugify(profile.Name, s.clock)
	}
	profiles := doc.Strains
	replaced := false
	for i := range profiles {
		if profiles[i].ID == profile.ID {
			// createdAt is fixed by the first save.
			if profiles[i].CreatedAt != "" {
				profile.CreatedAt = profiles[i].CreatedAt
			}
			profile = s.prepare(profile)
			profiles[i] = profile
			replaced = true
			break
		}
	}
	if !replaced {
		profile = s.prepare(profile)
		profiles = append([]strains.Profile{profile}, profiles...)
	}

	if _, err := s.write(profiles); err != nil {
		return strains.Profile{}, err
	}
	s.logger.Info().
		Str("id", profile.ID).
		Str("strain", profile.Name).
		Bool("replaced", replaced).
		Msg("Library profile stored")
	return profile, nil
}

// Get returns the profile with id.
func (s *Store) Get(ctx context.Context, id string) (strains.Profile, error) {
	profiles, err := s.Load(ctx)
	if err != nil {
		return strains.Profile{}, err
	}
	for _, p := range profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return strains.Profile{}, errors.NewNotFoundError("strain", id)
}

// Delete removes the profile with id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	kept := make([]strains.Profile, 0, len(doc.Strains))
	for _, p := range doc.Strains {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(doc.Strains) {
		return errors.NewNotFoundError("strain", id)
	}
	_, err = s.write(kept)
	return err
}

// List returns the profiles matching filter.
func (s *Store) List(ctx context.Context, filter Filter) ([]strains.Profile, error) {
	profiles, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(profiles), nil
}
