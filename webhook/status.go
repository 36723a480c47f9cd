package webhook

import "fmt"

/* Status is the result of one attempt or of a whole delivery
 * An attempt ends Delivered, Retrying or Failed; a delivery ends Delivered,
 * Failed, Skipped (nothing was sent) or Abandoned (cancelled between attempts)
 */
type Status int

const (
	Delivered Status = iota + 1
	Retrying
	Failed
	Skipped
	Abandoned
)

var statusNames = map[Status]string{
	Delivered: "delivered",
	Retrying:  "retrying",
	Failed:    "failed",
	Skipped:   "skipped",
	Abandoned: "abandoned",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// NewStatus parses a status label, returning zero for unknown labels
func NewStatus(str string) Status {
	for s, name := range statusNames {
		if name == str {
			return s
		}
	}
	return 0
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return fmt.Errorf("invalid status: %d", s)
	}
	return nil
}

// IsFinal reports whether no further attempt follows
func (s Status) IsFinal() bool {
	return s != Retrying && s.Validate() == nil
}

// Statuses lists every valid status
func Statuses() []Status {
	return []Status{Delivered, Retrying, Failed, Skipped, Abandoned}
}
