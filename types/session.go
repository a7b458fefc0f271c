package types

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one user's wizard run. It lives until it is deleted or sits
// idle past the purge TTL.
type Session struct {
	ID          string
	CurrentStep Step
	Contract    ContractRecord
	LastReport  *ReviewReport
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Contract = s.Contract.Clone()
	if s.LastReport != nil {
		r := *s.LastReport
		r.Issues = append([]Issue(nil), s.LastReport.Issues...)
		out.LastReport = &r
	}
	return &out
}
