package paper

// Status is the single source of truth for where a paper sits in review.
type Status string

const (
	StatusReviewAwaited         Status = "review_awaited"
	StatusReviewInProgress      Status = "review_in_progress"
	StatusAuthorResponseAwaited Status = "author_response_awaited"
	StatusAbstractAccepted      Status = "abstract_accepted"
	StatusDeclined              Status = "declined"

	// StatusApproved is reserved for a final conference-approval stage that
	// is distinct from abstract acceptance. No transition produces it yet,
	// and admin status updates may not target it until that stage ships.
	StatusApproved Status = "approved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusReviewAwaited, StatusReviewInProgress, StatusAuthorResponseAwaited,
		StatusAbstractAccepted, StatusDeclined, StatusApproved:
		return true
	}
	return false
}

// AdminSettable reports whether an administrator status update may target s.
// StatusApproved is excluded so it stays unreachable through every write path.
func (s Status) AdminSettable() bool {
	switch s {
	case StatusReviewAwaited, StatusReviewInProgress, StatusAuthorResponseAwaited,
		StatusAbstractAccepted, StatusDeclined:
		return true
	}
	return false
}

// Stream identifies one of the two independent artifact tracks, each with its
// own versioned history.
type Stream string

const (
	StreamAbstract  Stream = "abstract"
	StreamFullPaper Stream = "full_paper"
)

// EntryStatus is the life state of a single history entry. Entries are
// immutable once created except for the one-shot transitions
// current -> superseded and current -> reset_by_admin.
type EntryStatus string

const (
	EntryStatusCurrent      EntryStatus = "current"
	EntryStatusSuperseded   EntryStatus = "superseded"
	EntryStatusResetByAdmin EntryStatus = "reset_by_admin"
)
