package drag

import (
	"time"
)

// CommitMode selects when a gesture reaches the store.
type CommitMode string

const (
	CommitLive    CommitMode = "live"
	CommitRelease CommitMode = "release"
)

// PreviewCommitter buffers the latest candidate and writes it to the target
// only on Flush. It turns live commits into preview-then-commit.
type PreviewCommitter struct {
	target  Committer
	pending *Candidate
}

func NewPreviewCommitter(target Committer) *PreviewCommitter {
	return &PreviewCommitter{target: target}
}

// NewCommitter wraps target according to mode.
func NewCommitter(target Committer, mode CommitMode) Committer {
	if mode == CommitRelease {
		return NewPreviewCommitter(target)
	}
	return target
}

func (p *PreviewCommitter) CommitCandidate(itemID string, date time.Time, endDate *time.Time) error {
	c := Candidate{ItemID: itemID, Date: date}
	if endDate != nil {
		end := *endDate
		c.EndDate = &end
	}
	p.pending = &c
	return nil
}

// Pending returns the buffered candidate, if any.
func (p *PreviewCommitter) Pending() (Candidate, bool) {
	if p.pending == nil {
		return Candidate{}, false
	}
	return *p.pending, true
}

// Flush writes the buffered candidate and clears the buffer.
func (p *PreviewCommitter) Flush() error {
	if p.pending == nil {
		return nil
	}
	c := *p.pending
	p.pending = nil
	return p.target.CommitCandidate(c.ItemID, c.Date, c.EndDate)
}

// Discard drops the buffered candidate.
func (p *PreviewCommitter) Discard() {
	p.pending = nil
}
