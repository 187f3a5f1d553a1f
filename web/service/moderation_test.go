package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	moderation := ModerationService{}
	denylist := []string{"спам", "реклама", "оскорбление", "мат", "хулиган"}

	tests := []struct {
		name    string
		text    string
		terms   []string
		flagged bool
	}{
		{"clean text", "привет, как дела?", denylist, false},
		{"exact term", "спам", denylist, true},
		{"term inside text", "this is спам", denylist, true},
		{"uppercase term in text", "ЭТО РЕКЛАМА!", denylist, true},
		{"mixed case latin", "Buy my SPAM now", []string{"spam"}, true},
		{"term as substring", "рекламация", denylist, true},
		{"empty denylist", "спам", nil, false},
		{"empty text", "", denylist, false},
		{"text shorter than terms", "ок", denylist, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.flagged, moderation.Classify(tt.text, tt.terms))
		})
	}
}
