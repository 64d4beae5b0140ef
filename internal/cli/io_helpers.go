package cli

import (
	"encoding/json"
	"os"
	"strings"

	"any2text/internal/api"
)

const apiEnvVar = "ANY2TEXT_API"

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newClient resolves the backend address: explicit flag wins, then the
// environment, then the local development default.
func newClient(flagValue string) *api.Client {
	base := strings.TrimSpace(flagValue)
	if base == "" {
		base = strings.TrimSpace(os.Getenv(apiEnvVar))
	}
	return api.New(base)
}

func stdinIsTTY() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func stdoutIsTTY() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// truncate shortens s to at most max runes, never splitting a
// multi-byte character.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
