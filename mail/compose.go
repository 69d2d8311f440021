package mail

import "fmt"

// ApprovalRequest is sent to the support address when a new admin registers.
// The approve and deny links carry the registration's approval token.
func ApprovalRequest(supportAddress, adminName, adminEmail, approveURL, denyURL string) Message {
	body := fmt.Sprintf(
		"A new admin account is awaiting review.\r\n"+
			"\r\n"+
			"Name:  %s\r\n"+
			"Email: %s\r\n"+
			"\r\n"+
			"Approve: %s\r\n"+
			"Deny:    %s\r\n",
		adminName, adminEmail, approveURL, denyURL)

	return Message{
		To:      supportAddress,
		Subject: fmt.Sprintf("Admin approval requested: %s", adminEmail),
		Body:    body,
	}
}

// ApprovalResult notifies the registrant of the review outcome.
func ApprovalResult(adminEmail string, approved bool) Message {
	if approved {
		return Message{
			To:      adminEmail,
			Subject: "Your admin account has been approved",
			Body:    "Your admin account has been approved. You can now log in.\r\n",
		}
	}

	return Message{
		To:      adminEmail,
		Subject: "Your admin account request was declined",
		Body:    "Your admin account request was declined and the registration has been removed.\r\n",
	}
}

// ResetCode carries a one-time password reset code.
func ResetCode(adminEmail, otp string, validMins int) Message {
	return Message{
		To:      adminEmail,
		Subject: "Your password reset code",
		Body: fmt.Sprintf(
			"Your password reset code is %s. It expires in %d minutes.\r\n"+
				"If you did not request a reset, ignore this message.\r\n",
			otp, validMins),
	}
}
