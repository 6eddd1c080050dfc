package mailer

import "fmt"

func VerificationEmail(name, code string, ttlMin int) (string, string) {
	return "Verify your account", fmt.Sprintf(
		"<html><body><p>Hi %s,</p><p>Your verification code is <b>%s</b>. It expires in %d minutes.</p></body></html>",
		name, code, ttlMin)
}

func ResetPasswordEmail(name, code string, ttlMin int) (string, string) {
	return "Reset your password", fmt.Sprintf(
		"<html><body><p>Hi %s,</p><p>Use <b>%s</b> to reset your password. The code expires in %d minutes.</p>"+
			"<p>If you did not ask for this you can ignore this email.</p></body></html>",
		name, code, ttlMin)
}
