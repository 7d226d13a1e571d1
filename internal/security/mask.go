package security

import (
	"net/url"
	"strings"
)

// sensitiveFields contains field names that should be masked in logs.
var sensitiveFields = map[string]bool{
	"password":     true,
	"secret":       true,
	"token":        true,
	"access_token": true,
	"api_key":      true,
	"email":        true,
}

// MaskCredential masks a credential value for logging.
func MaskCredential(value string) string {
	if len(value) == 0 {
		return ""
	}
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	if len(value) <= 8 {
		return value[:2] + strings.Repeat("*", len(value)-2)
	}
	return value[:4] + strings.Repeat("*", len(value)-8) + value[len(value)-4:]
}

// MaskEmail keeps the first letter of the local part and the domain:
// "ana@example.com" becomes "a**@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return MaskCredential(email)
	}
	return email[:1] + strings.Repeat("*", at-1) + email[at:]
}

// MaskQuery masks sensitive parameters of a raw URL query.
func MaskQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "<unparseable>"
	}
	for key, vs := range values {
		if !sensitiveFields[strings.ToLower(key)] {
			continue
		}
		for i, v := range vs {
			if strings.ToLower(key) == "email" {
				vs[i] = MaskEmail(v)
			} else {
				vs[i] = MaskCredential(v)
			}
		}
	}
	return values.Encode()
}
