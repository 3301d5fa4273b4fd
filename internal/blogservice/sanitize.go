package blogservice

import "regexp"

var scriptTagPattern = regexp.MustCompile(`(?is)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

// stripScripts removes script elements from user supplied text.
func stripScripts(text string) string {
	return scriptTagPattern.ReplaceAllString(text, "")
}
