package sendly

import "time"

// Sandbox magic numbers give predictable behavior when used with a test
// API key (sl_test_*). Sending to one of these numbers never reaches a
// carrier; the API simulates the documented outcome instead.

// MagicNumberCategory groups sandbox test numbers by behavior.
type MagicNumberCategory string

const (
	MagicCategorySuccess MagicNumberCategory = "success"
	MagicCategoryError   MagicNumberCategory = "error"
	MagicCategoryDelay   MagicNumberCategory = "delay"
	MagicCategoryCarrier MagicNumberCategory = "carrier"
	MagicCategoryWebhook MagicNumberCategory = "webhook"
)

// MagicNumber describes one sandbox test number.
type MagicNumber struct {
	Number      string
	Category    MagicNumberCategory
	Description string
	// Delay is the simulated delivery delay, zero if none.
	Delay time.Duration
	// HTTPStatus is the simulated error status, zero for success numbers.
	HTTPStatus int
	// ErrorCode is the simulated error code, empty for success numbers.
	ErrorCode string
}

// Well-known sandbox numbers.
const (
	MagicSuccessInstant     = "+15550001234"
	MagicSuccessDelay5s     = "+15550001235"
	MagicSuccessVerizon     = "+15550001236"
	MagicErrorInvalidNumber = "+15550001001"
	MagicErrorCarrierReject = "+15550001002"
	MagicErrorRateLimit     = "+15550001003"
	MagicErrorTimeout       = "+15550001004"
	MagicErrorNoBalance     = "+15550001005"
)

var magicNumbers = map[string]MagicNumber{
	MagicSuccessInstant: {
		Number: MagicSuccessInstant, Category: MagicCategorySuccess,
		Description: "Instant delivery success",
	},
	MagicSuccessDelay5s: {
		Number: MagicSuccessDelay5s, Category: MagicCategorySuccess,
		Description: "Success with 5 second delay", Delay: 5 * time.Second,
	},
	MagicSuccessVerizon: {
		Number: MagicSuccessVerizon, Category: MagicCategorySuccess,
		Description: "Verizon carrier simulation",
	},
	MagicErrorInvalidNumber: {
		Number: MagicErrorInvalidNumber, Category: MagicCategoryError,
		Description: "Invalid phone number format", HTTPStatus: 400, ErrorCode: "invalid_number",
	},
	MagicErrorCarrierReject: {
		Number: MagicErrorCarrierReject, Category: MagicCategoryError,
		Description: "Carrier content rejection", HTTPStatus: 400, ErrorCode: "carrier_rejection",
	},
	MagicErrorRateLimit: {
		Number: MagicErrorRateLimit, Category: MagicCategoryError,
		Description: "Rate limit exceeded", HTTPStatus: 429, ErrorCode: "rate_limit_exceeded",
	},
	MagicErrorTimeout: {
		Number: MagicErrorTimeout, Category: MagicCategoryError,
		Description: "Request timeout", HTTPStatus: 500, ErrorCode: "timeout_error",
	},
	MagicErrorNoBalance: {
		Number: MagicErrorNoBalance, Category: MagicCategoryError,
		Description: "Insufficient account balance", HTTPStatus: 402, ErrorCode: "insufficient_balance",
	},
	"+15550001010": {
		Number: "+15550001010", Category: MagicCategoryDelay,
		Description: "10 second delivery delay", Delay: 10 * time.Second,
	},
	"+15550001030": {
		Number: "+15550001030", Category: MagicCategoryDelay,
		Description: "30 second delivery delay", Delay: 30 * time.Second,
	},
	"+15550001060": {
		Number: "+15550001060", Category: MagicCategoryDelay,
		Description: "60 second delivery delay", Delay: 60 * time.Second,
	},
	"+15550002001": {
		Number: "+15550002001", Category: MagicCategoryCarrier,
		Description: "Verizon network simulation",
	},
	"+15550002002": {
		Number: "+15550002002", Category: MagicCategoryCarrier,
		Description: "AT&T network simulation",
	},
	"+15550002003": {
		Number: "+15550002003", Category: MagicCategoryCarrier,
		Description: "T-Mobile network simulation",
	},
	"+15550003001": {
		Number: "+15550003001", Category: MagicCategoryWebhook,
		Description: "Successful webhook delivery",
	},
	"+15550003002": {
		Number: "+15550003002", Category: MagicCategoryWebhook,
		Description: "Webhook timeout simulation",
	},
	"+15550003003": {
		Number: "+15550003003", Category: MagicCategoryWebhook,
		Description: "Webhook 500 error with retry",
	},
}

// IsMagicNumber reports whether phone is a sandbox test number.
func IsMagicNumber(phone string) bool {
	_, ok := magicNumbers[phone]
	return ok
}

// MagicNumberInfo returns the sandbox metadata for phone.
func MagicNumberInfo(phone string) (MagicNumber, bool) {
	info, ok := magicNumbers[phone]
	return info, ok
}

// MagicNumbersByCategory returns all sandbox numbers in a category.
func MagicNumbersByCategory(category MagicNumberCategory) []MagicNumber {
	var result []MagicNumber
	for _, info := range magicNumbers {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}
