package services

// Outcome tells the caller what happened to a successful local mutation.
type Outcome int

const (
	// OutcomePublished: saved locally and uploaded to the service.
	OutcomePublished Outcome = iota
	// OutcomeLocalOnly: saved locally; the identity is not bound so nothing
	// was uploaded.
	OutcomeLocalOnly
	// OutcomeUnchanged: the request did not change any document.
	OutcomeUnchanged
)

func (o Outcome) String() string {
	switch o {
	case OutcomePublished:
		return "published"
	case OutcomeLocalOnly:
		return "local-only"
	case OutcomeUnchanged:
		return "unchanged"
	}
	return "unknown"
}
