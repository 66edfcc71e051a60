package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

func smtpDialer() (*gomail.Dialer, string, error) {
	host := os.Getenv("SMTP_HOST")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = username
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	if host == "" || username == "" {
		return nil, "", fmt.Errorf("SMTP is not configured")
	}
	return gomail.NewDialer(host, port, username, password), from, nil
}

// SendOTP sends a verification OTP via email
func SendOTP(to, otp string) error {
	dialer, from, err := smtpDialer()
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your ShopSphere verification code")
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Your verification code is <b>%s</b>. It expires in 10 minutes.</p>", otp))

	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send OTP email: %v", err)
	}
	return nil
}

// SendOrderConfirmation sends an order confirmation email
func SendOrderConfirmation(to string, orderID uint, total string) error {
	dialer, from, err := smtpDialer()
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("ShopSphere order #%d confirmed", orderID))
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Thank you for your order!</p><p>Order #%d has been placed. Total: %s</p>", orderID, total))

	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %v", err)
	}
	return nil
}
