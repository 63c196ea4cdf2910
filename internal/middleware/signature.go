// Package middleware provides HTTP middleware for the webhook server.
package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/yoobic-labs/helpdesk-bot/pkg/logger"
	"github.com/yoobic-labs/helpdesk-bot/pkg/metrics"
)

// SignatureHeader carries the HMAC of the request body.
const SignatureHeader = "X-Hub-Signature"

// maxBodyBytes bounds how much of a webhook body is read for verification.
const maxBodyBytes = 1 << 20

// VerifySignature authenticates webhook deliveries. The header must have
// the form "sha256=<hex digest>", where the digest is an HMAC-SHA256 of
// the exact body bytes as received, keyed with the shared secret. Any
// missing, malformed, or mismatched signature is rejected with 403
// before the request reaches a handler. The body is restored for
// downstream reads.
func VerifySignature(secret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
			if err != nil {
				rejectSignature(w, log, r, "unreadable body")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			header := r.Header.Get(SignatureHeader)
			if header == "" {
				rejectSignature(w, log, r, "missing signature header")
				return
			}

			algorithm, digest, found := strings.Cut(header, "=")
			if !found || algorithm != "sha256" {
				rejectSignature(w, log, r, "malformed signature header")
				return
			}

			provided, err := hex.DecodeString(digest)
			if err != nil {
				rejectSignature(w, log, r, "non-hex signature digest")
				return
			}

			mac := hmac.New(sha256.New, []byte(secret))
			mac.Write(body)
			if !hmac.Equal(provided, mac.Sum(nil)) {
				rejectSignature(w, log, r, "signature mismatch")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rejectSignature(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	metrics.SignatureFailuresTotal.Inc()
	log.Warn("webhook verification failed",
		zap.String("reason", reason),
		zap.String("remote_addr", r.RemoteAddr),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"error":"verification failed"}`))
}
