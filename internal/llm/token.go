package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// copilotConfigFiles are the credential files the Copilot IDE
// integrations write, in lookup order.
var copilotConfigFiles = []string{"hosts.json", "apps.json"}

// LoadGitHubToken resolves a GitHub OAuth token. The GITHUB_TOKEN
// environment variable wins; otherwise the credential files left
// behind by a Copilot-enabled IDE are searched.
func LoadGitHubToken() (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	for _, dir := range copilotConfigDirs() {
		for _, name := range copilotConfigFiles {
			token, err := readCopilotToken(filepath.Join(dir, name))
			if err == nil && token != "" {
				return token, nil
			}
		}
	}

	return "", errors.New("GitHub token not found: set GITHUB_TOKEN or sign in to GitHub Copilot in your IDE")
}

// copilotConfigDirs lists the directories a Copilot credential file
// may live in. The IDE integrations write ~/.config/github-copilot on
// every platform, which os.UserConfigDir only resolves to on Linux,
// so both are checked.
func copilotConfigDirs() []string {
	var dirs []string
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "github-copilot"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "github-copilot"))
	}
	return dirs
}

// readCopilotToken pulls the oauth_token for the github.com host out
// of one credential file. The file maps host keys, sometimes suffixed
// with a user ID, to credential objects.
func readCopilotToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var hosts map[string]struct {
		OAuthToken string `json:"oauth_token"`
	}
	if err := json.Unmarshal(data, &hosts); err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}

	for host, cred := range hosts {
		if strings.Contains(host, "github.com") && cred.OAuthToken != "" {
			return cred.OAuthToken, nil
		}
	}
	return "", fmt.Errorf("no github.com oauth_token in %s", path)
}
