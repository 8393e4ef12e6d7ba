package voting

import (
	"encoding/json"

	"github.com/ModernExodus/tontoken/lib/errors"
)

type Status uint

const (
	StatusInactive Status = iota
	StatusActive
	// StatusTied is an active cycle extended because its top candidates
	// shared the maximum vote count.
	StatusTied
)

func (s Status) String() string {
	switch s {
	case StatusInactive:
		return "inactive"
	case StatusActive:
		return "active"
	case StatusTied:
		return "tied"
	default:
		return ""
	}
}

func (s Status) IsValid() bool {
	switch s {
	case StatusInactive:
	case StatusActive:
	case StatusTied:
	default:
		return false
	}

	return true
}

// IsVoting is true while votes are accepted.
func (s Status) IsVoting() bool {
	return s == StatusActive || s == StatusTied
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}

	for _, status := range []Status{StatusInactive, StatusActive, StatusTied} {
		if status.String() == str {
			*s = status
			return nil
		}
	}

	return errors.InvalidParameter.With("status", str)
}
