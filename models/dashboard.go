package models

import "time"

type DatabaseInfo struct {
	Name    string `json:"db_name"`
	User    string `json:"db_user"`
	Version string `json:"db_version"`
}

type TableStats struct {
	Tournaments int `json:"tournaments"`
	Teams       int `json:"teams"`
	Players     int `json:"players"`
	Matches     int `json:"matches"`
}

// DatabaseStatus is the payload of the operational status page.
type DatabaseStatus struct {
	Connected bool         `json:"connected"`
	Timestamp time.Time    `json:"timestamp"`
	Info      DatabaseInfo `json:"db_info"`
	Stats     TableStats   `json:"stats"`
}

type TableCount struct {
	Name     string `json:"name"`
	RowCount int    `json:"row_count"`
	Error    bool   `json:"error,omitempty"`
}
