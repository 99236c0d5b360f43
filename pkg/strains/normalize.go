package strains

import (
	"encoding/json"
	"sort"

	"github.com/agentstation/utc"

	"github.com/agentstation/strainmap/pkg/constants"
	"github.com/agentstation/strainmap/pkg/labels"
)

// Clock returns the current time for createdAt stamps.
type Clock func() utc.Time

// Option configures Normalize and Merge.
type Option func(*options)

type options struct {
	clock Clock
	stamp bool
}

func newOptions(opts []Option) *options {
	o := &options{clock: utc.Now, stamp: true}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithClock sets the clock used for a missing createdAt.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithoutTimestamp leaves a missing createdAt empty.
func WithoutTimestamp() Option {
	return func(o *options) {
		o.stamp = false
	}
}

// Normalize coerces any candidate into a complete Profile. It accepts
// Profile, *Profile, Candidate, map[string]any, nil, or any value that
// marshals to a JSON object. It never fails: values of the wrong shape are
// coerced or dropped. Normalize(Normalize(v)) == Normalize(v).
func Normalize(v any, opts ...Option) Profile {
	o := newOptions(opts)

	var p Profile
	switch in := v.(type) {
	case nil:
	case Profile:
		p = cleanProfile(in)
	case *Profile:
		if in != nil {
			p = cleanProfile(*in)
		}
	case Candidate:
		p = fromCandidate(in)
	case map[string]any:
		p = fromCandidate(in)
	default:
		p = fromCandidate(toCandidate(in))
	}

	if p.Terpenes == nil {
		p.Terpenes = []Terpene{}
	}
	for _, key := range listKeys {
		if l := p.list(key); *l == nil {
			*l = []string{}
		}
	}
	if p.CreatedAt == "" && o.stamp {
		p.CreatedAt = o.clock().Format(constants.TimeFormatISO8601)
	}
	return p
}

func cleanProfile(in Profile) Profile {
	var out Profile
	for _, key := range scalarKeys {
		*out.scalar(key) = toText(*in.scalar(key))
	}
	for _, key := range listKeys {
		*out.list(key) = Dedupe(in.List(key))
	}
	out.Terpenes = make([]Terpene, 0, len(in.Terpenes))
	for _, t := range in.Terpenes {
		if t, ok := cleanTerpene(t.Name, t.Amount, toList(t.Effects)); ok {
			out.Terpenes = append(out.Terpenes, t)
		}
	}
	return out
}

func cleanTerpene(name, amount any, effects []string) (Terpene, bool) {
	t := Terpene{Name: toText(name), Amount: toText(amount), Effects: effects}
	if t.Name == "" {
		return Terpene{}, false
	}
	if t.Effects == nil {
		t.Effects = []string{}
	}
	return t, true
}

// fromCandidate reads canonical keys first, then any other key that
// resolves through the label table ("medical_applications", "Hersteller").
func fromCandidate(c map[string]any) Profile {
	var p Profile
	set := make(map[labels.Key]bool)

	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ei, ej := isCanonical(keys[i]), isCanonical(keys[j])
		if ei != ej {
			return ei
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		key := labels.Key(k)
		if !isCanonical(k) {
			key = labels.Resolve(k)
		}
		if key == labels.None || set[key] {
			continue
		}
		v := c[k]
		switch {
		case key == labels.Terpenes:
			p.Terpenes = toTerpenes(v)
		case p.list(key) != nil:
			*p.list(key) = Dedupe(toList(v))
		case p.scalar(key) != nil:
			*p.scalar(key) = toText(v)
		default:
			continue
		}
		set[key] = true
	}
	return p
}

func isCanonical(k string) bool {
	key := labels.Key(k)
	if key == labels.Terpenes {
		return true
	}
	var p Profile
	return p.scalar(key) != nil || p.list(key) != nil
}

func toTerpenes(v any) []Terpene {
	out := []Terpene{}
	var entries []any
	switch x := v.(type) {
	case nil:
		return out
	case []any:
		entries = x
	case []Terpene:
		for _, t := range x {
			entries = append(entries, t)
		}
	case []map[string]any:
		for _, m := range x {
			entries = append(entries, m)
		}
	case []string:
		for _, name := range x {
			entries = append(entries, name)
		}
	case string:
		for _, name := range SplitList(x) {
			entries = append(entries, name)
		}
	default:
		return out
	}

	for _, entry := range entries {
		var (
			t  Terpene
			ok bool
		)
		switch e := entry.(type) {
		case map[string]any:
			t, ok = cleanTerpene(e["name"], e["amount"], toList(e["effects"]))
		case Terpene:
			t, ok = cleanTerpene(e.Name, e.Amount, toList(e.Effects))
		case string:
			t, ok = cleanTerpene(e, "", nil)
		}
		if ok {
			out = append(out, t)
		}
	}
	return out
}

// toCandidate converts an arbitrary value through its JSON form. Values that
// do not encode to an object yield an empty candidate.
func toCandidate(v any) Candidate {
	data, err := json.Marshal(v)
	if err != nil {
		return Candidate{}
	}
	var c Candidate
	if err := json.Unmarshal(data, &c); err != nil {
		return Candidate{}
	}
	return c
}
