// Package wordbank holds the tiered lexicon and word selection.
package wordbank

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/ghosttype/internal/model"
)

var builtin = map[model.Tier][]string{
	model.TierEasy: {
		"type", "fear", "ghost", "dark", "void", "fade", "blur", "echo", "mist", "cold",
		"lost", "haunt", "creep", "drift", "shade", "grim", "pale", "hush", "silent", "shadow",
	},
	model.TierMedium: {
		"whisper", "specter", "phantom", "tremor", "shiver", "hollow", "vanish", "flicker",
		"twisted", "wither", "decay", "horror", "terror", "dread", "madness", "anguish",
		"despair", "torment", "cursed", "haunted", "forgotten", "fractured", "corrupt",
	},
	model.TierHard: {
		"deteriorate", "dissolution", "manifestation", "apparition", "hallucination",
		"disintegrate", "obliterate", "aberration", "nightmare", "apocalypse", "cataclysm",
		"revelation", "metamorphosis", "pestilence", "desolation", "malevolent", "supernatural",
		"paranormal", "spectral", "ethereal",
	},
}

// TierForLevel maps a player level to its word tier.
func TierForLevel(level int) model.Tier {
	switch {
	case level <= 3:
		return model.TierEasy
	case level <= 8:
		return model.TierMedium
	default:
		return model.TierHard
	}
}

// Bank selects words from tiered lists.
type Bank struct {
	rnd   *rand.Rand
	tiers map[model.Tier][]string
}

// New returns a Bank over the built-in lexicon seeded with the current time.
func New() *Bank {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Bank over the built-in lexicon using src.
func NewWithSource(src rand.Source) *Bank {
	tiers := make(map[model.Tier][]string, len(builtin))
	for tier, words := range builtin {
		tiers[tier] = append([]string(nil), words...)
	}
	return &Bank{rnd: rand.New(src), tiers: tiers}
}

// Replace swaps the list for a tier. Empty lists are ignored.
func (b *Bank) Replace(tier model.Tier, words []string) {
	if len(words) == 0 {
		return
	}
	b.tiers[tier] = append([]string(nil), words...)
}

// Words returns the list for a tier.
func (b *Bank) Words(tier model.Tier) []string {
	return b.tiers[tier]
}

// Pick returns a uniformly random word from the tier.
func (b *Bank) Pick(tier model.Tier) string {
	words := b.tiers[tier]
	return words[b.rnd.Intn(len(words))]
}

// Ghosts returns n distinct distractor words from the tier, skipping exclude.
// Fewer than n are returned when the tier runs out of candidates.
func (b *Bank) Ghosts(tier model.Tier, exclude string, n int) []string {
	if n <= 0 {
		return nil
	}
	words := b.tiers[tier]
	candidates := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == exclude {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		candidates = append(candidates, w)
	}
	b.rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}

// GhostCount returns 2 or 3 with equal probability.
func (b *Bank) GhostCount() int {
	return 2 + b.rnd.Intn(2)
}
