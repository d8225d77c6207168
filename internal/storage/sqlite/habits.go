package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/utils"
)

// AddHabit inserts a habit named name starting today with no completions
func (s *Store) AddHabit(name string) (models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, apperrors.NewValidationError("name", "habit name cannot be empty")
	}
	if err := s.ensureOpen(); err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		Name:      name,
		StartDate: s.Today(),
	}
	completed, err := habit.CompletedDates.Encode()
	if err != nil {
		return models.Habit{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO habits (name, start_date, completed_dates)
		VALUES (?, ?, ?)`,
		habit.Name, utils.FormatDate(habit.StartDate), completed)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to insert habit: %w", err)
	}

	habit.ID, err = result.LastInsertId()
	if err != nil {
		return models.Habit{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Habit{}, fmt.Errorf("failed to commit habit: %w", err)
	}

	logger.Debug("Added habit", "id", habit.ID, "name", habit.Name)
	return habit, nil
}

func (s *Store) GetHabit(id int64) (models.Habit, error) {
	if err := s.ensureOpen(); err != nil {
		return models.Habit{}, err
	}

	row := s.db.QueryRow(`
		SELECT id, name, start_date, completed_dates
		FROM habits WHERE id = ?`, id)

	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, apperrors.NewNotFoundError(id)
	}
	return h, err
}

// ListHabits returns every habit in insertion order, without completion data
func (s *Store) ListHabits() ([]models.HabitSummary, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT id, name, start_date FROM habits ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.HabitSummary{}
	for rows.Next() {
		var h models.HabitSummary
		var startDate string
		if err := rows.Scan(&h.ID, &h.Name, &startDate); err != nil {
			return nil, err
		}
		h.StartDate, err = utils.ParseDate(startDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start_date for habit %d: %w", h.ID, err)
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

// GetAllHabits returns every habit including its completion set
func (s *Store) GetAllHabits() ([]models.Habit, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, name, start_date, completed_dates
		FROM habits ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

// MarkCompleted adds today to the habit's completion set and returns the
// updated set. Marking twice on the same day leaves the set unchanged.
func (s *Store) MarkCompleted(id int64) (models.CompletionSet, error) {
	if err := s.ensureOpen(); err != nil {
		return models.CompletionSet{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.CompletionSet{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var raw sql.NullString
	err = tx.QueryRow("SELECT completed_dates FROM habits WHERE id = ?", id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CompletionSet{}, apperrors.NewNotFoundError(id)
	}
	if err != nil {
		return models.CompletionSet{}, err
	}

	completed, err := models.DecodeCompletionSet(raw.String)
	if err != nil {
		return models.CompletionSet{}, fmt.Errorf("habit %d: %w", id, err)
	}

	today := s.Today()
	if !completed.Add(today) {
		logger.Debug("Habit already completed today", "id", id, "day", utils.FormatDate(today))
		return completed, nil
	}

	encoded, err := completed.Encode()
	if err != nil {
		return models.CompletionSet{}, err
	}
	if _, err := tx.Exec("UPDATE habits SET completed_dates = ? WHERE id = ?", encoded, id); err != nil {
		return models.CompletionSet{}, fmt.Errorf("failed to update completed dates: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.CompletionSet{}, fmt.Errorf("failed to commit completion: %w", err)
	}

	logger.Debug("Marked habit completed", "id", id, "day", utils.FormatDate(today))
	return completed, nil
}

func (s *Store) GetProgress(id int64) (models.Progress, error) {
	if err := s.ensureOpen(); err != nil {
		return models.Progress{}, err
	}

	var p models.Progress
	var raw sql.NullString
	err := s.db.QueryRow("SELECT name, completed_dates FROM habits WHERE id = ?", id).Scan(&p.Name, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Progress{}, apperrors.NewNotFoundError(id)
	}
	if err != nil {
		return models.Progress{}, err
	}

	p.CompletedDates, err = models.DecodeCompletionSet(raw.String)
	if err != nil {
		return models.Progress{}, fmt.Errorf("habit %d: %w", id, err)
	}
	return p, nil
}

// DeleteHabit permanently removes the habit. Deleting an id that does not
// exist succeeds.
func (s *Store) DeleteHabit(id int64) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}

	result, err := s.db.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		logger.Debug("Delete of missing habit ignored", "id", id)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	var startDate string
	var raw sql.NullString

	if err := row.Scan(&h.ID, &h.Name, &startDate, &raw); err != nil {
		return models.Habit{}, err
	}

	var err error
	h.StartDate, err = utils.ParseDate(startDate)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse start_date for habit %d: %w", h.ID, err)
	}
	h.CompletedDates, err = models.DecodeCompletionSet(raw.String)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %d: %w", h.ID, err)
	}
	return h, nil
}
