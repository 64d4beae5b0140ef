package model

import "fmt"

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusDone       = "done"
	StatusError      = "error"
)

// Fast jobs may skip a visible processing phase, so queued -> done and
// queued -> error are legal. done and error are absorbing. The empty
// row is the not-yet-observed state: a first snapshot may arrive in any
// phase, including an already-terminal one.
var allowedTransitions = map[string]map[string]bool{
	"": {
		StatusQueued:     true,
		StatusProcessing: true,
		StatusDone:       true,
		StatusError:      true,
	},
	StatusQueued: {
		StatusQueued:     true,
		StatusProcessing: true,
		StatusDone:       true,
		StatusError:      true,
	},
	StatusProcessing: {
		StatusProcessing: true,
		StatusDone:       true,
		StatusError:      true,
	},
	StatusDone: {
		StatusDone: true,
	},
	StatusError: {
		StatusError: true,
	},
}

func IsKnownStatus(status string) bool {
	_, ok := allowedTransitions[status]
	return ok
}

func IsTerminal(status string) bool {
	return status == StatusDone || status == StatusError
}

func CanTransition(from, to string) bool {
	next, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

func TransitionJobStatus(job *Job, toStatus string) error {
	from := job.Status
	if !CanTransition(from, toStatus) {
		return fmt.Errorf("invalid job status transition: %q -> %q (job_id=%s)", from, toStatus, job.ID)
	}
	job.Status = toStatus
	return nil
}
