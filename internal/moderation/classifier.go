// Package moderation implements advertising suppression for the moderated chat:
// content classification, the mute registry, profile risk evaluation, the per-message
// pipeline and the review of moderator decisions on escalation alerts.
package moderation

import "strings"

// DefaultAdMarkers are the substrings that mark text as advertising.
var DefaultAdMarkers = []string{
	"t.me/",
	"http",
	"https",
	"www.",
	".com",
	".ru",
	"vk.com",
	"instagram",
	"whatsapp",
}

// Detector decides whether a piece of text is advertising.
type Detector interface {
	IsAdvertisement(text string) bool
}

// Classifier is a case-insensitive substring Detector. Matching has no word
// boundaries: any marker anywhere in the text is a hit.
type Classifier struct {
	markers []string
}

// NewClassifier creates a Classifier for the given markers. Empty markers are
// skipped; nil or empty input selects DefaultAdMarkers.
func NewClassifier(markers []string) *Classifier {
	if len(markers) == 0 {
		markers = DefaultAdMarkers
	}
	c := &Classifier{markers: make([]string, 0, len(markers))}
	for _, m := range markers {
		m = strings.ToLower(m)
		if m == "" {
			continue
		}
		c.markers = append(c.markers, m)
	}
	return c
}

// IsAdvertisement reports whether text contains any marker. Empty text is never advertising.
func (c *Classifier) IsAdvertisement(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, m := range c.markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Markers returns a copy of the active marker list.
func (c *Classifier) Markers() []string {
	out := make([]string, len(c.markers))
	copy(out, c.markers)
	return out
}
