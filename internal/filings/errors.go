package filings

import "errors"

var (
	// ErrAlreadySubmitted indicates the period's filing is frozen; a second
	// submission is rejected, never overwritten.
	ErrAlreadySubmitted = errors.New("filings: period already submitted")
	// ErrSnapshotMissing indicates a submitted period without a stored
	// snapshot. The legal record is gone; recomputing is not a substitute.
	ErrSnapshotMissing = errors.New("filings: submitted period has no snapshot")
)
