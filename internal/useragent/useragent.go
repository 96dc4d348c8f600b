// Package useragent provides the browser-like request headers sent to upstream sites.
package useragent

// Chrome is the User-Agent of a desktop Chrome browser on Windows.
const Chrome = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Headers returns the header set attached to every outbound request.
// Accept-Encoding is left to the HTTP client so responses are decoded transparently.
func Headers() map[string]string {
	return map[string]string{
		"User-Agent":                Chrome,
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.5",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
	}
}
