package validators

import "strings"

// IsDocumentValid checks the client document (DNI): digits only, 6 to 12
// characters. Foreign IDs with letters are accepted when prefixed "CE-".
func IsDocumentValid(doc string) bool {
	doc = strings.TrimSpace(doc)

	if rest, ok := strings.CutPrefix(doc, "CE-"); ok {
		return len(rest) >= 6 && len(rest) <= 12
	}

	if len(doc) < 6 || len(doc) > 12 {
		return false
	}
	for _, r := range doc {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func IsPhoneValid(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}

	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}
