package model

// Status drives everything: which dashboard bucket an appointment lands in
// and which transitions the doctor may still make.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusAccepted || s == StatusRejected
}

// Terminal reports whether no further transition is possible. Accepted and
// rejected are both terminal; there is no way back to pending and no
// cancellation path.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransition encodes the whole lifecycle: pending may move to accepted
// or rejected exactly once, nothing else moves anywhere.
func CanTransition(from, to Status) bool {
	return from == StatusPending && (to == StatusAccepted || to == StatusRejected)
}

// Buckets partitions appointments by status into the three dashboard
// sections: action-required (pending), upcoming (accepted) and archived
// (rejected). Every appointment lands in exactly one bucket; unknown
// statuses are dropped rather than misfiled.
type Buckets struct {
	Pending  []Appointment
	Upcoming []Appointment
	Archived []Appointment
}

func Bucket(appts []Appointment) Buckets {
	var b Buckets
	for _, a := range appts {
		switch a.Status {
		case StatusPending:
			b.Pending = append(b.Pending, a)
		case StatusAccepted:
			b.Upcoming = append(b.Upcoming, a)
		case StatusRejected:
			b.Archived = append(b.Archived, a)
		}
	}
	return b
}
