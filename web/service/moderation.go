package service

import "strings"

// ModerationService classifies message text against the denylist.
type ModerationService struct{}

// Classify reports whether text contains any denylist term as a
// case-insensitive substring. The fold is locale-naive: plain
// strings.ToLower on both sides.
func (s *ModerationService) Classify(text string, denylist []string) bool {
	if len(denylist) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, term := range denylist {
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
