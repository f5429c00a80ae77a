package service

import "github.com/aicv/cv-service/internal/core/domain"

// extractJSONObject returns the first balanced {...} span in s, tolerating
// surrounding prose, code fences and leading language tags. Braces inside
// JSON string literals do not affect the balance. When no balanced object
// exists, it fails with ErrMalformedUpstreamResponse.
func extractJSONObject(s string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if start == -1 {
			if ch == '{' {
				start = i
				depth = 1
			}
			continue
		}

		if escaped {
			escaped = false
			continue
		}

		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], nil
				}
			}
		}
	}

	return "", domain.ErrMalformedUpstreamResponse
}
