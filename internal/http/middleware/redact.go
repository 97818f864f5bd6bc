package middleware

import (
	"net/http"
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var (
	secretRE = regexp.MustCompile(`(?i)\b(password|passwd|token|secret)=[^&]*`)
	uuidRE   = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE  = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// Digits only, so it cannot eat the hex groups of a UUID or ObjectID.
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// redactor scrubs credentials and obvious PII from strings headed for logs.
type redactor struct {
	masked map[string]struct{} // lower-cased header names
}

func newRedactor(maskHeaders []string) redactor {
	r := redactor{masked: map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}}
	for _, h := range maskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			r.masked[h] = struct{}{}
		}
	}
	return r
}

// text applies the substitutions in order: credentials, ids, emails, then
// phones, the loosest pattern.
func (r redactor) text(s string) string {
	if s == "" {
		return s
	}
	s = secretRE.ReplaceAllString(s, "$1="+redacted)
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

// headers flattens h, fully masking sensitive names and scrubbing the rest.
func (r redactor) headers(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		if _, ok := r.masked[strings.ToLower(k)]; ok {
			out[k] = redacted
			continue
		}
		out[k] = r.text(strings.Join(vv, ", "))
	}
	return out
}
