package firecrawl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// APIKeyEnv is checked first when resolving credentials.
const APIKeyEnv = "FIRECRAWL_API_KEY"

const apiKeyPrefix = "fc-"

// LoadAPIKey resolves an API key, in priority order: the FIRECRAWL_API_KEY
// environment variable, the explicit keyFile path, ~/.secrets/firecrawl.key,
// then ~/.secrets (first line starting with "fc-").
func LoadAPIKey(keyFile string) (string, error) {
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		return key, nil
	}

	if keyFile != "" {
		data, err := os.ReadFile(expandHome(keyFile))
		if err != nil {
			return "", fmt.Errorf("read API key file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates := []string{
			filepath.Join(home, ".secrets", "firecrawl.key"),
			filepath.Join(home, ".secrets"),
		}
		for _, path := range candidates {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			content := strings.TrimSpace(string(data))
			for _, line := range strings.Split(content, "\n") {
				if line = strings.TrimSpace(line); strings.HasPrefix(line, apiKeyPrefix) {
					return line, nil
				}
			}
			if strings.HasPrefix(content, apiKeyPrefix) {
				return content, nil
			}
		}
	}

	return "", fmt.Errorf("no API key found: set %s or create ~/.secrets/firecrawl.key", APIKeyEnv)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
