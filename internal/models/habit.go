package models

import "time"

// Habit represents a recurring practice to track
type Habit struct {
	ID             int64         `json:"id" yaml:"id"`
	Name           string        `json:"name" yaml:"name"`
	StartDate      time.Time     `json:"start_date" yaml:"start_date"`
	CompletedDates CompletionSet `json:"completed_dates" yaml:"completed_dates"`
}

// Summary returns the listing view of the habit
func (h Habit) Summary() HabitSummary {
	return HabitSummary{ID: h.ID, Name: h.Name, StartDate: h.StartDate}
}

// HabitSummary is a habit without its completion history
type HabitSummary struct {
	ID        int64     `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	StartDate time.Time `json:"start_date" yaml:"start_date"`
}

// Progress is a habit's name together with every day it was completed
type Progress struct {
	Name           string        `json:"name" yaml:"name"`
	CompletedDates CompletionSet `json:"completed_dates" yaml:"completed_dates"`
}
