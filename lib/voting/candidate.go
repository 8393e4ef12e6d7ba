package voting

import (
	"unicode/utf8"

	"github.com/ModernExodus/tontoken/lib/errors"
)

const (
	MaxCandidateNameLength        = 64
	MaxCandidateDescriptionLength = 512
	MaxCandidateWebsiteLength     = 256
)

type Candidate struct {
	Proposer    string `json:"proposer"`
	Recipient   string `json:"recipient"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
}

func (c Candidate) CheckMetadata() error {
	check := func(field, value string, max int) error {
		if !utf8.ValidString(value) || len(value) > max {
			return errors.InvalidCandidateMetadata.With("field", field)
		}
		return nil
	}

	if err := check("name", c.Name, MaxCandidateNameLength); err != nil {
		return err
	}
	if err := check("description", c.Description, MaxCandidateDescriptionLength); err != nil {
		return err
	}
	return check("website", c.Website, MaxCandidateWebsiteLength)
}
