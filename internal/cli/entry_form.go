package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/cli/formatter"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// worklogHuhTheme returns a custom huh theme using the Gruvbox palette.
func worklogHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// entryInput holds the raw text of an entry as typed on the command line or in
// the form.
type entryInput struct {
	Day   string
	Start string
	End   string
	Km    string
	Note  string
}

// entryForm creates a huh form that fills in. Values already in in are
// shown as defaults.
func entryForm(in *entryInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Day").
				Description("dd.MM.yyyy").
				Value(&in.Day).
				Validate(validateDisplayDate),
			huh.NewInput().
				Title("Start").
				Placeholder("08:00").
				Value(&in.Start).
				Validate(validateClock),
			huh.NewInput().
				Title("End").
				Description("An end before the start is read as the next day").
				Placeholder("16:30").
				Value(&in.End).
				Validate(validateClock),
			huh.NewInput().
				Title("Distance (km)").
				Placeholder("0").
				Value(&in.Km).
				Validate(validateNonNegativeFloat),
			huh.NewText().
				Title("Note").
				Value(&in.Note),
		),
	).WithTheme(worklogHuhTheme()).WithShowHelp(false)
}

func validateDisplayDate(s string) error {
	if _, err := time.Parse(domain.DisplayDateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use dd.MM.yyyy format")
	}
	return nil
}

func validateClock(s string) error {
	if _, err := time.Parse(domain.ClockLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use HH:MM format")
	}
	return nil
}

// validateNonNegativeFloat accepts empty or a non-negative number.
func validateNonNegativeFloat(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := parseKm(s)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

// parseKm accepts both "12.5" and "12,5". Inf and NaN are rejected.
func parseKm(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, err
	}
	if !domain.IsFinite(v) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

// shiftTimes resolves start and end clock times on day. An end clock earlier
// than the start belongs to the following day.
func shiftTimes(day time.Time, start, end string, loc *time.Location) (time.Time, time.Time, error) {
	s, err := domain.ClockOn(day, start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	e, err := domain.ClockOn(day, end, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	if e.Before(s) {
		e = e.AddDate(0, 0, 1)
	}
	return s, e, nil
}

// toEntry converts the raw input into an entry owned by owner.
func (in entryInput) toEntry(owner string, loc *time.Location) (*domain.LogbookEntry, error) {
	day, err := domain.ParseDisplayDate(in.Day)
	if err != nil {
		return nil, err
	}
	start, end, err := shiftTimes(day, in.Start, in.End, loc)
	if err != nil {
		return nil, err
	}
	km, err := parseKm(in.Km)
	if err != nil {
		return nil, &domain.ValidationError{Field: "distance_km", Reason: "must be a number"}
	}
	return &domain.LogbookEntry{
		Date:       day,
		StartTime:  start,
		EndTime:    end,
		DistanceKm: km,
		CreatedBy:  owner,
		Note:       strings.TrimSpace(in.Note),
	}, nil
}
