package storage

import (
	"time"

	"github.com/julianstephens/habitrack/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(name string) (models.Habit, error)
	GetHabit(id int64) (models.Habit, error)
	ListHabits() ([]models.HabitSummary, error)
	GetAllHabits() ([]models.Habit, error)
	MarkCompleted(id int64) (models.CompletionSet, error)
	GetProgress(id int64) (models.Progress, error)
	DeleteHabit(id int64) error

	// Utils
	Today() time.Time
	GetConfigPath() string
}
