package validators

import (
	"net"
	"strings"
	"time"
)

func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// IsDate accepts zero-padded YYYY-MM-DD.
func IsDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsClockTime accepts zero-padded HH:MM.
func IsClockTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
