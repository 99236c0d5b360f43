package strains

import "strings"

// Merge combines two candidates field by field. Both are normalized first;
// a non-empty override list replaces the base list, a non-empty override
// string replaces the base string. id and createdAt follow the same rule.
// Neither input is modified.
func Merge(base, override any, opts ...Option) Profile {
	out := Normalize(base, opts...)
	ov := Normalize(override, append(append([]Option{}, opts...), WithoutTimestamp())...)

	for _, key := range scalarKeys {
		if v := *ov.scalar(key); strings.TrimSpace(v) != "" {
			*out.scalar(key) = v
		}
	}
	for _, key := range listKeys {
		if v := ov.List(key); len(v) > 0 {
			*out.list(key) = v
		}
	}
	if len(ov.Terpenes) > 0 {
		out.Terpenes = ov.Terpenes
	}
	return out
}
