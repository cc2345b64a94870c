package cache

import "regexp"

// urlRegex matches the first http/https link in free text. Angle brackets,
// quotes and whitespace terminate the match so surrounding prose is not
// swallowed.
var urlRegex = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)

// ExtractURL returns the first well-formed link found in text, or "" if
// there is none. Plain text without a scheme never matches.
func ExtractURL(text string) string {
	return urlRegex.FindString(text)
}
