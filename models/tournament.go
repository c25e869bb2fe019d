package models

import "time"

// Tournament представляет турнир (таблица tournament).
type Tournament struct {
	ID        int       `json:"id" db:"tr_id"`
	Name      string    `json:"name" db:"tr_name"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
}
