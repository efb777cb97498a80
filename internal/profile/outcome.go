package profile

// Status classifies the result of one profile creation attempt.
type Status int

const (
	Created Status = iota
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

// Outcome is the tri-state result of [Writer.Create]. Err is set for Skipped
// (the collision sentinel) and Failed (the originating write error).
type Outcome struct {
	Status Status
	Err    error
}

func created() Outcome            { return Outcome{Status: Created} }
func skipped(err error) Outcome   { return Outcome{Status: Skipped, Err: err} }
func failedOut(err error) Outcome { return Outcome{Status: Failed, Err: err} }
