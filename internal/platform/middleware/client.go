package middleware

import (
	"strings"

	"github.com/mssola/useragent"
)

// ClientFromUserAgent names the SDK that sent a request, e.g. "secureid-go/1.2.0",
// for request logs. Returns "unknown" when the User-Agent is empty or unparsable.
func ClientFromUserAgent(userAgentString string) string {
	if strings.TrimSpace(userAgentString) == "" {
		return "unknown"
	}

	ua := useragent.New(userAgentString)
	name, version := ua.Browser()
	if name == "" {
		name, version = ua.Engine()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	if version == "" {
		return name
	}
	return name + "/" + version
}
