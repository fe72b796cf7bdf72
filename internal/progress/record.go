package progress

import "time"

// Status represents the lifecycle of a work item. Absence of a record means
// the item is unclaimed.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusFailed     Status = "failed"
)

var allStatuses = []Status{StatusInProgress, StatusDone, StatusFailed}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the closed status set in display order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// Valid reports whether the status belongs to the closed set.
func (s Status) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

// Terminal reports whether no further automatic transition occurs. A failed
// item is terminal for the run that recorded it but stays claimable by a
// later run.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusFailed
}

// Record is one entry in the progress table. Owner is informational: it
// names the instance that last transitioned the record and is never used to
// verify lock ownership.
type Record struct {
	Status    Status    `json:"status"`
	Owner     string    `json:"owner"`
	UpdatedAt time.Time `json:"updated_at"`
}
