package ports

import "context"

// CaptchaVerifier checks a client-supplied captcha token against the
// issuing service. Implementations return an error for absent, expired
// or forged tokens; a nil error means the token was verified.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string, remoteIP string) error
}
