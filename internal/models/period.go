package models

import "time"

// Period represents one slot of the bell schedule. Start and end are wall-clock
// "HH:MM" strings on the same day.
type Period struct {
	ID        string    `db:"id" json:"id"`
	Number    int       `db:"number" json:"number"`
	StartTime string    `db:"start_time" json:"startTime"`
	EndTime   string    `db:"end_time" json:"endTime"`
	IsBreak   bool      `db:"is_break" json:"isBreak"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
