package hcaptcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/referendum-bg/anketa/internal/core/ports"
)

const defaultVerifyURL = "https://api.hcaptcha.com/siteverify"

type Verifier struct {
	secret    string
	verifyURL string
	client    *http.Client
}

func NewVerifier(secret string) ports.CaptchaVerifier {
	return &Verifier{
		secret:    secret,
		verifyURL: defaultVerifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewVerifierWithURL points the verifier at a non-default siteverify
// endpoint. Used by tests.
func NewVerifierWithURL(secret, verifyURL string) ports.CaptchaVerifier {
	return &Verifier{
		secret:    secret,
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func (v *Verifier) Verify(ctx context.Context, token string, remoteIP string) error {
	if token == "" {
		return errors.New("missing captcha token")
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" && remoteIP != "unknown" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("siteverify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("siteverify returned status %d", resp.StatusCode)
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode siteverify response: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("token rejected: %s", strings.Join(result.ErrorCodes, ", "))
	}

	return nil
}
