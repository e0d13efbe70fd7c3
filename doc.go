// Package sendly provides a Go client SDK for the Sendly SMS/MMS API.
//
// The SDK validates request parameters locally, sends authenticated
// JSON requests to the Sendly REST API, and retries transient failures
// (network errors, rate limits, transient 5xx) with exponential backoff
// and jitter. Every failure surfaces as exactly one typed error:
// ValidationError, AuthenticationError, RateLimitError, APIError or
// NetworkError.
//
// Basic usage:
//
//	client, err := sendly.New("sl_live_...") // or "" to read SENDLY_API_KEY
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	resp, err := client.SMS.Send(ctx, sendly.SendParams{
//	    To:   "+15551234567",
//	    Text: "Your code is 123456",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Message ID:", resp.ID)
//
// A client is safe for concurrent use; each call owns its own retry
// state and only the pooled connections are shared.
package sendly
