package domain

import "fmt"

// HoursMinutes is a duration split for display, with seconds dropped.
type HoursMinutes struct {
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
}

// FormatTime splits seconds into whole hours and minutes.
func FormatTime(seconds int64) HoursMinutes {
	if seconds < 0 {
		seconds = 0
	}
	return HoursMinutes{
		Hours:   seconds / 3600,
		Minutes: (seconds % 3600) / 60,
	}
}

func (hm HoursMinutes) String() string {
	return fmt.Sprintf("%dh %dm", hm.Hours, hm.Minutes)
}

// Hours renders seconds as hours with one decimal place.
func Hours(seconds int64) string {
	return fmt.Sprintf("%.1fh", float64(seconds)/3600)
}
