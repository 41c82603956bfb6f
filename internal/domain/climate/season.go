package climate

import (
	"errors"
	"fmt"
)

var ErrInvalidSeason = errors.New("invalid season")

type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

const (
	SeasonCount         = 4
	DefaultSeasonLength = 14
)

func (s Season) String() string {
	switch s {
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Autumn:
		return "Autumn"
	case Winter:
		return "Winter"
	default:
		return fmt.Sprintf("Season(%d)", int(s))
	}
}

func (s Season) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Modifier is the ambient temperature offset the season applies.
func (s Season) Modifier() float64 {
	switch s {
	case Summer:
		return 10
	case Autumn:
		return -5
	case Winter:
		return -20
	default:
		return 0
	}
}

// SeasonForDay derives the season from a day count. Negative days and
// non-positive lengths fold to Spring.
func SeasonForDay(day int64, length int) Season {
	if day < 0 || length <= 0 {
		return Spring
	}
	cycle := day % int64(SeasonCount*length)
	return Season(cycle / int64(length))
}

// DayInSeason is the 1-based day number within the current season.
func DayInSeason(day int64, length int) int {
	if day < 0 || length <= 0 {
		return 1
	}
	return int(day%int64(length)) + 1
}

// OverrideDay maps a manual season id to the first day of that season.
func OverrideDay(id int, length int) (int64, error) {
	if id < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSeason, id)
	}
	if length <= 0 {
		return 0, fmt.Errorf("%w: season length %d", ErrInvalidSeason, length)
	}
	return int64(id) * int64(length), nil
}

type Announcement struct {
	Title    string
	Subtitle string
	Color    string
}

func (s Season) Announcement() Announcement {
	a := Announcement{Title: s.String() + " Has Arrived"}
	switch s {
	case Spring:
		a.Subtitle, a.Color = "The snow melts and flora blooms.", "green"
	case Summer:
		a.Subtitle, a.Color = "The sun beats down harshly.", "yellow"
	case Autumn:
		a.Subtitle, a.Color = "The leaves wither and a chill sets in.", "gold"
	case Winter:
		a.Subtitle, a.Color = "Frost covers the land. Prepare for the cold.", "aqua"
	}
	return a
}

// Forecast lists the short outlook lines shown with the season info.
func (s Season) Forecast() []string {
	var out []string
	switch mod := s.Modifier(); {
	case mod > 0:
		out = append(out, "Warmer than usual")
	case mod < 0:
		out = append(out, "Colder than usual")
	default:
		out = append(out, "Mild temperatures")
	}
	if s == Summer {
		out = append(out, "Extreme day/night variation")
	}
	return out
}
