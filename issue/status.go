package issue

import "fmt"

// Status of an issue; the string form is what goes on the wire
type Status string

const (
	Open       Status = "OPEN"
	InProgress Status = "IN_PROGRESS"
	Resolved   Status = "RESOLVED"
	Closed     Status = "CLOSED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Validate() error {
	switch s {
	case Open, InProgress, Resolved, Closed:
		return nil
	}
	return fmt.Errorf("invalid status: %q", string(s))
}

// Priority of an issue
type Priority string

const (
	Low    Priority = "LOW"
	Medium Priority = "MEDIUM"
	High   Priority = "HIGH"
)

func (p Priority) String() string {
	return string(p)
}

func (p Priority) Validate() error {
	switch p {
	case Low, Medium, High:
		return nil
	}
	return fmt.Errorf("invalid priority: %q", string(p))
}
