package visits

import "strings"

// ClassifyUserAgent extracts browser, OS, and device class from a User-Agent
// string via substring matching.
func ClassifyUserAgent(ua string) (browser, os, device string) {
	l := strings.ToLower(ua)

	// Order matters: Edge and Opera UAs both contain "chrome".
	switch {
	case strings.Contains(l, "edg"):
		browser = "Edge"
	case strings.Contains(l, "opr") || strings.Contains(l, "opera"):
		browser = "Opera"
	case strings.Contains(l, "firefox"):
		browser = "Firefox"
	case strings.Contains(l, "chrome"):
		browser = "Chrome"
	case strings.Contains(l, "safari"):
		browser = "Safari"
	default:
		browser = "Unknown"
	}

	// Android UAs contain "linux"; iPhone/iPad before the Mac check.
	switch {
	case strings.Contains(l, "windows"):
		os = "Windows"
	case strings.Contains(l, "android"):
		os = "Android"
	case strings.Contains(l, "iphone") || strings.Contains(l, "ipad"):
		os = "iOS"
	case strings.Contains(l, "macintosh") || strings.Contains(l, "mac os"):
		os = "macOS"
	case strings.Contains(l, "linux"):
		os = "Linux"
	default:
		os = "Unknown"
	}

	// iPad UAs can carry "mobile", so the tablet check comes first.
	switch {
	case strings.Contains(l, "tablet") || strings.Contains(l, "ipad"):
		device = "Tablet"
	case strings.Contains(l, "mobi") || strings.Contains(l, "android"):
		device = "Mobile"
	default:
		device = "Desktop"
	}

	return browser, os, device
}

var botMarkers = []string{
	"bot", "crawler", "spider", "crawl", "slurp", "scrape",
	"googlebot", "bingbot", "yandex", "baidu", "duckduckbot",
	"facebookexternalhit", "twitterbot", "linkedinbot",
	"ahrefsbot", "semrushbot", "curl", "wget", "python-requests",
}

// IsBot reports whether the User-Agent is likely a crawler. Bot page loads
// are never counted as visits.
func IsBot(ua string) bool {
	l := strings.ToLower(ua)
	for _, marker := range botMarkers {
		if strings.Contains(l, marker) {
			return true
		}
	}
	return false
}
