package services

import (
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client *resend.Client
}

var emailService *EmailService

// InitEmailService initializes the email service with Resend API
func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")

	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email service will not be available.")
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
	}

	log.Println("Email service initialized successfully with Resend")
}

// GetEmailService returns the singleton email service instance
func GetEmailService() *EmailService {
	return emailService
}

const emailStyles = `
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            text-align: center;
            padding: 20px 0;
            border-bottom: 2px solid #7a9cc6;
        }
        .header h1 {
            color: #7a9cc6;
            margin: 0;
        }
        .content {
            padding: 30px 0;
        }
        .code-container {
            background-color: #f5f5f5;
            border: 2px solid #7a9cc6;
            border-radius: 8px;
            padding: 20px;
            text-align: center;
            margin: 20px 0;
        }
        .code {
            font-size: 32px;
            font-weight: bold;
            letter-spacing: 8px;
            color: #7a9cc6;
            font-family: monospace;
        }
        .warning {
            background-color: #fff3cd;
            border: 1px solid #ffc107;
            border-radius: 4px;
            padding: 15px;
            margin: 20px 0;
        }
        .footer {
            text-align: center;
            padding: 20px 0;
            border-top: 1px solid #ddd;
            font-size: 12px;
            color: #666;
        }
`

func (s *EmailService) send(toEmail, subject, htmlBody, textBody string) error {
	params := &resend.SendEmailRequest{
		From:    os.Getenv("RESEND_FROM_EMAIL"),
		To:      []string{toEmail},
		Subject: subject,
		Html:    htmlBody,
		Text:    textBody,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		log.Printf("Failed to send email to %s: %v", toEmail, err)
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.Printf("Successfully sent email to %s. Email ID: %s", toEmail, sent.Id)
	return nil
}

// SendPasswordResetEmail sends a password reset email with a 6-digit code
func (s *EmailService) SendPasswordResetEmail(toEmail string, code string, firstName string) error {
	if s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>%s</style>
</head>
<body>
    <div class="header">
        <h1>EgliseConnect</h1>
    </div>

    <div class="content">
        <h2>Password Reset Request</h2>

        <p>Hi %s,</p>

        <p>We received a request to reset your EgliseConnect password. Use the verification code below to complete the password reset process:</p>

        <div class="code-container">
            <div class="code">%s</div>
        </div>

        <p><strong>This code will expire in 15 minutes.</strong></p>

        <div class="warning">
            <p><strong>Security Notice:</strong></p>
            <p>If you didn't request a password reset, please ignore this email. Your password will remain unchanged.</p>
        </div>

        <p>Blessings,<br>Your church office</p>
    </div>

    <div class="footer">
        <p>This is an automated message, please do not reply directly to this email.</p>
    </div>
</body>
</html>
`, emailStyles, firstName, code)

	textBody := fmt.Sprintf(`
Password Reset Request

Hi %s,

We received a request to reset your EgliseConnect password. Use the verification code below to complete the password reset process:

Your verification code: %s

This code will expire in 15 minutes.

If you didn't request a password reset, please ignore this email. Your password will remain unchanged.

Blessings,
Your church office
`, firstName, code)

	return s.send(toEmail, "Reset Your EgliseConnect Password", htmlBody, textBody)
}

// SendWelcomeEmail greets a newly registered member and points them at the
// membership form.
func (s *EmailService) SendWelcomeEmail(toEmail string, firstName string) error {
	if s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>%s</style>
</head>
<body>
    <div class="header">
        <h1>EgliseConnect</h1>
    </div>

    <div class="content">
        <h2>Welcome!</h2>

        <p>Hi %s,</p>

        <p>Thank you for registering with our church community. The next step in your membership journey is to complete your membership form from your profile page.</p>

        <p>Once your form is submitted, our team will review it and guide you through the rest of the process.</p>

        <p>Blessings,<br>Your church office</p>
    </div>

    <div class="footer">
        <p>This is an automated message, please do not reply directly to this email.</p>
    </div>
</body>
</html>
`, emailStyles, firstName)

	textBody := fmt.Sprintf(`
Welcome!

Hi %s,

Thank you for registering with our church community. The next step in your membership journey is to complete your membership form from your profile page.

Once your form is submitted, our team will review it and guide you through the rest of the process.

Blessings,
Your church office
`, firstName)

	return s.send(toEmail, "Welcome to EgliseConnect", htmlBody, textBody)
}

// SendReviewDecisionEmail informs a member of the outcome of their membership
// form review.
func (s *EmailService) SendReviewDecisionEmail(toEmail string, firstName string, decision string, reason string) error {
	if s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	detail := ""
	if reason != "" {
		detail = fmt.Sprintf("<p>%s</p>", reason)
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>%s</style>
</head>
<body>
    <div class="header">
        <h1>EgliseConnect</h1>
    </div>

    <div class="content">
        <h2>Membership Review Update</h2>

        <p>Hi %s,</p>

        <p>Your membership form has been reviewed: <strong>%s</strong></p>
        %s

        <p>You can see the details and any next steps on your profile page.</p>

        <p>Blessings,<br>Your church office</p>
    </div>

    <div class="footer">
        <p>This is an automated message, please do not reply directly to this email.</p>
    </div>
</body>
</html>
`, emailStyles, firstName, decision, detail)

	textBody := fmt.Sprintf(`
Membership Review Update

Hi %s,

Your membership form has been reviewed: %s
%s

You can see the details and any next steps on your profile page.

Blessings,
Your church office
`, firstName, decision, reason)

	return s.send(toEmail, "Your Membership Review Update", htmlBody, textBody)
}
