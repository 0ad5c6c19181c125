// Package sweetpay is a client for the Sweetpay payment platform:
// subscriptions, credit checks and checkout sessions.
//
// Every operation follows the same pipeline: the request is sent by a
// Connector, the raw outcome is classified into either a success
// envelope or a typed *Error, and on success the decoded body is run
// through the registered validator rules (see the validate package)
// before the envelope reaches the caller.
//
//	client := sweetpay.NewClient(token, sweetpay.WithStage())
//	resp, err := client.Subscription().Create(ctx, map[string]any{
//		"amount":   map[string]any{"amount": "10.00", "currency": "SEK"},
//		"country":  "SE",
//		"interval": "MONTHLY",
//		"startsAt": sweetpay.NewDate(2020, 1, 1),
//	})
//	if errors.Is(err, sweetpay.ErrFailureStatus) {
//		apiErr, _ := sweetpay.AsError(err)
//		// apiErr.Status holds the literal business status.
//	}
//
// Failures are never silent: an operation returns exactly one of an
// envelope or an error, and every transport or API failure arrives as
// a *Error whose Kind places it in a closed set of categories.
package sweetpay
