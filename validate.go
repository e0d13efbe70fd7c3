package sendly

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// maxTextLength is the longest accepted message body (concatenated SMS ceiling).
const maxTextLength = 1600

const (
	maxMediaURLs = 10
	maxTags      = 20
	maxTagLength = 50
)

var (
	phoneNumberPattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	apiKeyPattern      = regexp.MustCompile(`^sl_(test|live)_[a-zA-Z0-9_-]{24,50}$`)
)

// IsValidPhoneNumber reports whether phone is in E.164 format: a leading
// "+" followed by 1-15 digits, no leading zero.
func IsValidPhoneNumber(phone string) bool {
	return phoneNumberPattern.MatchString(phone)
}

// isValidAPIKey reports whether the key matches sl_test_* / sl_live_*.
func isValidAPIKey(apiKey string) bool {
	return apiKeyPattern.MatchString(apiKey)
}

// isValidURL reports whether raw parses with both a scheme and a host.
func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// isHTTPSURL reports whether raw is a well-formed https:// URL.
func isHTTPSURL(raw string) bool {
	return isValidURL(raw) && strings.HasPrefix(raw, "https://")
}

// CountryCode extracts the calling code from an E.164 number, returning
// "unknown" when it cannot be determined.
func CountryCode(phone string) string {
	digits := strings.TrimPrefix(phone, "+")

	switch {
	case strings.HasPrefix(digits, "1"):
		return "1" // US/Canada
	case strings.HasPrefix(digits, "44"):
		return "44" // UK
	case strings.HasPrefix(digits, "33"):
		return "33" // France
	case strings.HasPrefix(digits, "86"):
		return "86" // China
	}

	twoDigitCodes := map[string]struct{}{
		"27": {}, "34": {}, "39": {}, "41": {}, "43": {}, "45": {},
		"46": {}, "47": {}, "48": {}, "81": {}, "82": {}, "91": {},
		"92": {}, "93": {}, "94": {}, "95": {},
	}
	if len(digits) >= 10 {
		if _, ok := twoDigitCodes[digits[:2]]; ok {
			return digits[:2]
		}
	}
	return "unknown"
}

var tollFreePattern = regexp.MustCompile(`^1(800|833|844|855|866|877|888)`)

// IsTollFree reports whether phone is a US/Canada toll-free number.
func IsTollFree(phone string) bool {
	digits := strings.TrimPrefix(phone, "+")
	return tollFreePattern.MatchString(digits)
}

// validateTollFreeRouting rejects toll-free senders targeting
// international destinations; toll-free only reaches US/Canada.
func validateTollFreeRouting(from, to string) error {
	if !IsTollFree(from) {
		return nil
	}
	if CountryCode(to) != "1" {
		return &ValidationError{
			Field: "from",
			Message: fmt.Sprintf(
				"toll-free number %s cannot send to international destination %s; toll-free numbers only support US/Canada",
				from, to),
		}
	}
	return nil
}

// validMessageTypes is the closed set accepted by the API.
var validMessageTypes = map[MessageType]struct{}{
	MessageTypeTransactional: {},
	MessageTypeOTP:           {},
	MessageTypeMarketing:     {},
	MessageTypeAlert:         {},
	MessageTypePromotional:   {},
}

// validateSendParams checks every SendParams constraint. It returns a
// *ValidationError naming the offending field on the first violation;
// no network attempt happens after a failure here.
func validateSendParams(p *SendParams) error {
	if p.To == "" {
		return &ValidationError{Field: "to", Message: "to is required"}
	}
	if !IsValidPhoneNumber(p.To) {
		return &ValidationError{Field: "to", Message: "invalid phone number format, expected E.164 (+15551234567)"}
	}

	if p.Text == "" {
		return &ValidationError{Field: "text", Message: "text is required"}
	}
	if len(p.Text) > maxTextLength {
		return &ValidationError{Field: "text", Message: fmt.Sprintf("text exceeds maximum length of %d characters", maxTextLength)}
	}

	if p.From != "" {
		if !IsValidPhoneNumber(p.From) {
			return &ValidationError{Field: "from", Message: "invalid phone number format, expected E.164 (+15551234567)"}
		}
		if err := validateTollFreeRouting(p.From, p.To); err != nil {
			return err
		}
	}

	if p.MessageType != "" {
		if _, ok := validMessageTypes[p.MessageType]; !ok {
			return &ValidationError{
				Field:   "message_type",
				Message: "invalid message type, must be one of: transactional, otp, marketing, alert, promotional",
			}
		}
	}

	if len(p.MediaURLs) > maxMediaURLs {
		return &ValidationError{Field: "media_urls", Message: fmt.Sprintf("maximum %d media URLs allowed", maxMediaURLs)}
	}
	for _, u := range p.MediaURLs {
		if strings.TrimSpace(u) == "" {
			return &ValidationError{Field: "media_urls", Message: "media URLs cannot be empty"}
		}
		if !isHTTPSURL(u) {
			return &ValidationError{Field: "media_urls", Message: "media URLs must be valid HTTPS URLs"}
		}
	}

	if p.WebhookURL != "" && !isHTTPSURL(p.WebhookURL) {
		return &ValidationError{Field: "webhook_url", Message: "webhook URL must be a valid HTTPS URL"}
	}
	if p.WebhookFailoverURL != "" && !isHTTPSURL(p.WebhookFailoverURL) {
		return &ValidationError{Field: "webhook_failover_url", Message: "webhook failover URL must be a valid HTTPS URL"}
	}

	if len(p.Tags) > maxTags {
		return &ValidationError{Field: "tags", Message: fmt.Sprintf("maximum %d tags allowed", maxTags)}
	}
	for _, tag := range p.Tags {
		if strings.TrimSpace(tag) == "" {
			return &ValidationError{Field: "tags", Message: "tags cannot be empty"}
		}
		if len(tag) > maxTagLength {
			return &ValidationError{Field: "tags", Message: fmt.Sprintf("tag length cannot exceed %d characters", maxTagLength)}
		}
	}

	return nil
}
