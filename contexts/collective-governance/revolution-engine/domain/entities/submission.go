package entities

import (
	"strings"

	domainerrors "revolution/contexts/collective-governance/revolution-engine/domain/errors"
)

// Submission is a curated creative proposal. Immutable once appended to a
// submission period; the cultural artifact is a URI to mintable media.
type Submission struct {
	ID               int
	Authors          []string
	CulturalArtifact string
	Title            string
	Description      string
}

func (s Submission) HasAuthor(address string) bool {
	for _, author := range s.Authors {
		if strings.EqualFold(strings.TrimSpace(author), strings.TrimSpace(address)) {
			return true
		}
	}
	return false
}

func validateSubmissionInput(authors []string, culturalArtifact string) error {
	if len(authors) == 0 || strings.TrimSpace(culturalArtifact) == "" {
		return domainerrors.ErrInvalidInput
	}
	for _, author := range authors {
		if strings.TrimSpace(author) == "" {
			return domainerrors.ErrInvalidInput
		}
	}
	return nil
}
