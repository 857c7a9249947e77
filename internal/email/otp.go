package email

import "fmt"

// NewOTPEmail composes the account verification message sent at signup.
func NewOTPEmail(to, code string) *Email {
	return &Email{
		To:       []string{to},
		Subject:  "Verify your email address",
		TextBody: fmt.Sprintf("Your verification code is %s. It is valid for a single use.", code),
		HTMLBody: fmt.Sprintf(
			"<p>Your verification code is</p><p style=\"font-size:24px;font-weight:bold;letter-spacing:4px\">%s</p><p>It is valid for a single use.</p>",
			code,
		),
	}
}
