package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentstation/strainmap/pkg/errors"
	"github.com/agentstation/strainmap/pkg/logging"
	"github.com/agentstation/strainmap/pkg/strains"
)

var researchReplacer = strings.NewReplacer("•", "\n", "∙", "\n")

// ParseResearchInput splits a free-form list of strain names. Names may be
// separated by newlines, commas, semicolons or bullet glyphs; a leading dash
// is dropped. Duplicates keep their first position.
func ParseResearchInput(input string) []string {
	fields := strings.FieldsFunc(researchReplacer.Replace(input), func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == ';'
	})

	seen := make(map[string]bool, len(fields))
	names := []string{}
	for _, field := range fields {
		name := strings.TrimSpace(field)
		name = strings.TrimSpace(strings.TrimPrefix(name, "-"))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// Research looks up the names in input and returns normalized profiles in
// the order the researcher returned them.
func (i *Importer) Research(ctx context.Context, input string) ([]strains.Profile, error) {
	names := ParseResearchInput(input)
	if len(names) == 0 {
		return nil, errors.NewValidationError("names", input, "no strain names given")
	}
	if i.researcher == nil {
		return nil, fmt.Errorf("research: %w", errors.ErrLLMUnavailable)
	}

	ctx = logging.WithSource(i.scope(ctx, "research"), "llm")
	logger := logging.FromContext(ctx)
	logger.Debug().Strs("names", names).Msg("Researching strains")

	candidates, err := i.researcher.Research(ctx, names)
	if err != nil {
		logger.Warn().Err(err).Int("names", len(names)).Msg("Research failed")
		return nil, err
	}

	profiles := make([]strains.Profile, 0, len(candidates))
	for _, c := range candidates {
		p := strains.Normalize(c, strains.WithClock(i.clock))
		if p.IsEmpty() {
			continue
		}
		profiles = append(profiles, p)
	}
	if len(profiles) == 0 {
		return nil, errors.ErrNoProfiles
	}

	logger.Info().Int("requested", len(names)).Int("profiles", len(profiles)).Msg("Research completed")
	return profiles, nil
}
