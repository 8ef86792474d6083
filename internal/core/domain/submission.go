package domain

// RejectionKind is the closed set of reasons a submission can be turned
// away. Callers switch on the kind instead of matching message strings.
type RejectionKind string

const (
	RejectionInvalid         RejectionKind = "invalid"
	RejectionCaptchaFailed   RejectionKind = "captcha_failed"
	RejectionRateLimited     RejectionKind = "rate_limited"
	RejectionDuplicateEmail  RejectionKind = "duplicate_email"
	RejectionDuplicateDevice RejectionKind = "duplicate_device"
	RejectionDuplicateIP     RejectionKind = "duplicate_ip"
	RejectionStorageError    RejectionKind = "storage_error"
)

type Rejection struct {
	Kind    RejectionKind
	Message string
}

// SubmissionResult is the terminal outcome of one submission attempt:
// either Vote is set (accepted and persisted) or Rejection is set.
type SubmissionResult struct {
	Vote      *Vote
	Rejection *Rejection
}

func (r SubmissionResult) Accepted() bool {
	return r.Vote != nil
}

func Accepted(v *Vote) SubmissionResult {
	return SubmissionResult{Vote: v}
}

func Rejected(kind RejectionKind, message string) SubmissionResult {
	return SubmissionResult{Rejection: &Rejection{Kind: kind, Message: message}}
}
