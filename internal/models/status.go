package models

import (
	"strconv"
	"strings"
)

// ReportStatus is the lifecycle state of a report. The numeric values are the
// codes accepted by list filters.
type ReportStatus int

const (
	StatusPending    ReportStatus = 1
	StatusInProgress ReportStatus = 2
	StatusCompleted  ReportStatus = 3
	StatusArchived   ReportStatus = 4
)

var statusNames = map[ReportStatus]string{
	StatusPending:    "pending",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
	StatusArchived:   "archived",
}

func (s ReportStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s ReportStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// StatusFromCode resolves a raw numeric code. ok is false for anything that
// is not one of the four known codes.
func StatusFromCode(raw string) (ReportStatus, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	s := ReportStatus(n)
	return s, s.Valid()
}
