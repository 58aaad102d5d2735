package auth

import (
	"strings"

	"github.com/user/memberchat/apperror"
)

// headerScheme is the keyword expected in the Authorization header:
// "Authorization: Token <key>". Comparison is case-insensitive.
const headerScheme = "token"

// ParseAuthorization extracts the token key from a raw Authorization
// header value. It is a pure function with three outcomes:
//
//   - ("", false, nil): no authentication attempted (absent header, or a
//     different scheme such as "Bearer"); the caller decides whether
//     anonymous access is acceptable.
//   - (key, true, nil): a well-formed "Token <key>" header.
//   - ("", false, err): the Token scheme was used but the header does
//     not consist of exactly two whitespace-separated words.
func ParseAuthorization(header string) (string, bool, error) {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return "", false, nil
	}
	if !strings.EqualFold(fields[0], headerScheme) {
		return "", false, nil
	}
	if len(fields) != 2 {
		return "", false, apperror.NewAuthenticationError("malformed Authorization header", nil)
	}
	return fields[1], true, nil
}
