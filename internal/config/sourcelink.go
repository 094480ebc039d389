package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
)

// SourceLinkBase resolves the base URL that source links on generated pages
// point at. The configured github_url wins; otherwise the origin remote of
// the project's git repository is used, normalized to an https URL.
func SourceLinkBase(tc *ToolConfig, projectRoot string) (string, error) {
	if tc.GithubURL != "" {
		return strings.TrimRight(tc.GithubURL, "/"), nil
	}

	repo, err := git.PlainOpen(projectRoot)
	if err != nil {
		return "", fmt.Errorf("no github_url configured and project is not a git repository: %w", err)
	}
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return "", fmt.Errorf("no github_url configured and origin remote missing: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("no github_url configured and origin remote has no URL")
	}
	return NormalizeRemoteURL(urls[0])
}

// NormalizeRemoteURL converts a git remote URL (scp-like or https) into a
// browsable https URL without the trailing .git suffix.
func NormalizeRemoteURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", fmt.Errorf("empty remote URL")
	}
	if strings.Contains(u, "://") {
		parsed, err := url.Parse(u)
		if err != nil {
			return "", fmt.Errorf("unsupported remote URL %s: %w", raw, err)
		}
		parsed.Scheme = "https"
		parsed.User = nil
		u = parsed.String()
	} else {
		// scp-like form: git@host:org/repo.git
		at := strings.Index(u, "@")
		colon := strings.Index(u, ":")
		if at < 0 || colon < at {
			return "", fmt.Errorf("unsupported remote URL: %s", raw)
		}
		u = "https://" + u[at+1:colon] + "/" + u[colon+1:]
	}
	u = strings.TrimSuffix(u, ".git")
	return strings.TrimRight(u, "/"), nil
}
