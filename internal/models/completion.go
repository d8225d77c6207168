package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/habitrack/internal/utils"
)

// CompletionSet is a set of calendar days on which a habit was done.
// The zero value is an empty set ready to use.
type CompletionSet struct {
	days map[string]struct{}
}

// NewCompletionSet builds a set from dates, collapsing duplicates
func NewCompletionSet(dates ...time.Time) CompletionSet {
	var s CompletionSet
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

// Add inserts the calendar day of d and reports whether it was absent
func (s *CompletionSet) Add(d time.Time) bool {
	key := utils.FormatDate(utils.DateOnly(d))
	if _, ok := s.days[key]; ok {
		return false
	}
	if s.days == nil {
		s.days = make(map[string]struct{})
	}
	s.days[key] = struct{}{}
	return true
}

// Contains reports whether the calendar day of d is in the set
func (s CompletionSet) Contains(d time.Time) bool {
	_, ok := s.days[utils.FormatDate(utils.DateOnly(d))]
	return ok
}

func (s CompletionSet) Len() int {
	return len(s.days)
}

// Strings returns the days as YYYY-MM-DD, ascending
func (s CompletionSet) Strings() []string {
	out := make([]string, 0, len(s.days))
	for k := range s.days {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Dates returns the days ascending
func (s CompletionSet) Dates() []time.Time {
	keys := s.Strings()
	out := make([]time.Time, 0, len(keys))
	for _, k := range keys {
		// keys are only ever produced by FormatDate
		d, _ := utils.ParseDate(k)
		out = append(out, d)
	}
	return out
}

// Encode serializes the set for the completed_dates column
func (s CompletionSet) Encode() (string, error) {
	b, err := json.Marshal(s.Strings())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeCompletionSet parses a completed_dates column value.
// Empty input is the empty set. Besides the JSON array written by Encode,
// the comma-joined form of older databases is accepted.
func DecodeCompletionSet(raw string) (CompletionSet, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return CompletionSet{}, nil
	}

	var parts []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &parts); err != nil {
			return CompletionSet{}, fmt.Errorf("failed to decode completed dates: %w", err)
		}
	} else {
		parts = strings.Split(raw, ",")
	}

	var s CompletionSet
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := utils.ParseDate(p)
		if err != nil {
			return CompletionSet{}, err
		}
		s.Add(d)
	}
	return s, nil
}

func (s CompletionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

func (s *CompletionSet) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeCompletionSet(string(data))
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

func (s CompletionSet) MarshalYAML() (interface{}, error) {
	return s.Strings(), nil
}
