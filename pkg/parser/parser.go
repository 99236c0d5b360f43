// Package parser extracts a strain profile from free-form or template text.
//
// Parsing is a fold over normalized lines. The only state carried between
// lines is the draft profile and the section that bullets and continuation
// lines belong to. Parse never fails: anything it cannot place ends up in
// notes.
package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/agentstation/strainmap/pkg/constants"
	"github.com/agentstation/strainmap/pkg/labels"
	"github.com/agentstation/strainmap/pkg/strains"
)

// state is the fold accumulator.
type state struct {
	profile strains.Profile
	section labels.Key // labels.None outside a section
}

// Parse extracts a normalized profile from text. The options are passed to
// strains.Normalize, which stamps createdAt.
func Parse(text string, opts ...strains.Option) strains.Profile {
	st := state{}
	for _, line := range normalizeLines(text) {
		st = st.step(line)
	}

	p := st.profile
	narrative := strings.Join([]string{p.OverallEffect, p.Characteristic, p.CommunityFeedback, p.Notes}, "\n")
	p.Effects = unionEffects(p.Effects, InferEffects(narrative))

	return strains.Normalize(p, opts...)
}

func (st state) step(line string) state {
	bullet := isBullet(line)
	label, value, hasColon := strings.Cut(line, ":")

	// unlabeled short first line
	if st.profile.Name == "" && !hasColon && !bullet &&
		utf8.RuneCountInString(line) <= constants.MaxUnlabeledNameLength &&
		labels.Resolve(line) == labels.None {
		st.profile.Name = line
		return st
	}

	// bare section heading
	if !hasColon && !bullet {
		switch key := labels.Resolve(line); {
		case key == labels.Overview:
			st.section = labels.None
			return st
		case key.IsSection():
			st.section = key
			return st
		}
	}

	// label: value
	if hasColon {
		key := labels.Resolve(label)
		if !bullet || key != labels.None {
			return st.assign(key, strings.TrimSpace(value), line)
		}
	}

	if bullet {
		if next, ok := st.appendBullet(stripBullet(line)); ok {
			return next
		}
	}

	switch st.section {
	case labels.CommunityFeedback:
		st.profile.CommunityFeedback = appendLine(st.profile.CommunityFeedback, line)
	case labels.OverallEffect:
		st.profile.OverallEffect = appendLine(st.profile.OverallEffect, line)
	default:
		st.profile.Notes = appendLine(st.profile.Notes, line)
	}
	return st
}

// assign applies a resolved "label: value" line.
func (st state) assign(key labels.Key, value, line string) state {
	p := &st.profile

	switch key {
	case labels.None:
		if st.section == labels.CommunityFeedback {
			p.CommunityFeedback = appendLine(p.CommunityFeedback, line)
		} else {
			p.Notes = appendLine(p.Notes, line)
		}
		return st

	case labels.ThcCbd:
		thc, cbd := splitCannabinoids(value)
		if thc != "" {
			p.THC = thc
		}
		if cbd != "" {
			p.CBD = cbd
		}
		st.section = labels.None

	case labels.Effects, labels.AromaFlavor, labels.MedicalApplications:
		// A repeated label replaces the earlier list; continuation lines append.
		list := strains.Dedupe(strains.SplitList(value))
		switch key {
		case labels.Effects:
			p.Effects = list
		case labels.AromaFlavor:
			p.AromaFlavor = list
		default:
			p.MedicalApplications = list
		}
		st.section = key

	case labels.Terpenes:
		if value != "" {
			if t, ok := ParseTerpeneLine(value); ok {
				p.Terpenes = append(p.Terpenes, t)
			}
		}
		st.section = labels.Terpenes

	case labels.Notes:
		p.Notes = appendLine(p.Notes, value)
		st.section = labels.None

	case labels.CommunityFeedback:
		p.CommunityFeedback = appendLine(p.CommunityFeedback, value)
		st.section = key

	case labels.OverallEffect:
		p.OverallEffect = appendLine(p.OverallEffect, value)
		st.section = key

	case labels.Overview:
		p.Notes = appendLine(p.Notes, value)
		st.section = labels.None

	default:
		if value != "" {
			st.setScalar(key, value)
		}
		st.section = labels.None
	}
	return st
}

func (st *state) setScalar(key labels.Key, value string) {
	p := &st.profile
	switch key {
	case labels.ID:
		p.ID = value
	case labels.Name:
		p.Name = value
	case labels.Manufacturer:
		p.Manufacturer = value
	case labels.Genetics:
		p.Genetics = value
	case labels.THC:
		p.THC = value
	case labels.CBD:
		p.CBD = value
	case labels.Cultivation:
		p.Cultivation = value
	case labels.OnsetDuration:
		p.OnsetDuration = value
	case labels.Characteristic:
		p.Characteristic = value
	case labels.Image:
		p.Image = value
	case labels.CreatedAt:
		p.CreatedAt = value
	}
}

// appendBullet adds a de-bulleted line to the active list section.
func (st state) appendBullet(item string) (state, bool) {
	p := &st.profile
	switch st.section {
	case labels.Terpenes:
		t, ok := ParseTerpeneLine(item)
		if !ok {
			return st, false
		}
		p.Terpenes = append(p.Terpenes, t)
	case labels.Effects:
		p.Effects = append(p.Effects, item)
	case labels.AromaFlavor:
		p.AromaFlavor = append(p.AromaFlavor, item)
	case labels.MedicalApplications:
		p.MedicalApplications = append(p.MedicalApplications, item)
	default:
		return st, false
	}
	return st, true
}
