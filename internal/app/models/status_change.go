package models

import "time"

// StatusChange bundles the fields written together with a lifecycle
// transition. Every change records the acting reviewer and a timestamp for
// audit.
type StatusChange struct {
	Status      ApplicationStatus
	MeritRank   *int
	InterviewAt *time.Time
	Remarks     string
	ReviewedBy  int64
	ReviewedAt  time.Time
}
