package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"filedex/models"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// DefaultGitHubAPI is the public GitHub REST endpoint
const DefaultGitHubAPI = "https://api.github.com"

// ErrUnauthorized is returned when the hosting API rejects the credential
var ErrUnauthorized = errors.New("unauthorized")

// GitHubClient lists repository contents through the GitHub REST API
type GitHubClient struct {
	Owner  string
	Repo   string
	Branch string
	Dir    string
	client *resty.Client
}

// GitHubConfig holds the repository coordinates for GitHubClient
type GitHubConfig struct {
	BaseURL string
	Token   string
	Owner   string
	Repo    string
	Branch  string
	Dir     string
	Timeout time.Duration
}

// GitHubContent is an entry of the "repository contents" response
type GitHubContent struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	SHA         string `json:"sha"`
	DownloadURL string `json:"download_url"`
}

// GitHubCommit is an entry of the "list commits" response
type GitHubCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Committer struct {
			Date time.Time `json:"date"`
		} `json:"committer"`
		Author struct {
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// NewGitHubClient creates a new GitHub client
func NewGitHubClient(cfg GitHubConfig) *GitHubClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultGitHubAPI
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	client.SetHeader("Accept", "application/vnd.github+json")
	client.SetHeader("X-GitHub-Api-Version", "2022-11-28")
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &GitHubClient{
		Owner:  cfg.Owner,
		Repo:   cfg.Repo,
		Branch: cfg.Branch,
		Dir:    strings.Trim(cfg.Dir, "/"),
		client: client,
	}
}

// Authenticate checks the token, if one is configured
func (gh *GitHubClient) Authenticate(ctx context.Context) error {
	if gh.client.Token == "" {
		return nil
	}

	resp, err := gh.client.R().
		SetContext(ctx).
		Get("/user")
	if err != nil {
		return fmt.Errorf("failed to connect to GitHub: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("authentication failed: %w (status %d)", ErrUnauthorized, resp.StatusCode())
	default:
		return fmt.Errorf("authentication failed: status %d", resp.StatusCode())
	}
}

// ListFiles lists the regular files of the configured directory at the branch
func (gh *GitHubClient) ListFiles(ctx context.Context) ([]models.FileMetadata, error) {
	endpoint := "/repos/{owner}/{repo}/contents"
	if gh.Dir != "" {
		endpoint += "/" + escapePath(gh.Dir)
	}

	resp, err := gh.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"owner": gh.Owner,
			"repo":  gh.Repo,
		}).
		SetQueryParam("ref", gh.Branch).
		Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("list files failed: %w (status %d)", ErrUnauthorized, resp.StatusCode())
	default:
		return nil, fmt.Errorf("list files failed: status %d", resp.StatusCode())
	}

	// a file path answers with a single object instead of an array
	var contents []GitHubContent
	if err := json.Unmarshal(resp.Body(), &contents); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var files []models.FileMetadata
	for _, item := range contents {
		if item.Type != "file" {
			continue
		}

		files = append(files, models.FileMetadata{
			Name:        item.Name,
			Path:        item.Path,
			Size:        models.NewSize(item.Size),
			DownloadURL: item.DownloadURL,
			FileType:    models.FileType(item.Name),
		})
	}

	return files, nil
}

// LastModified returns the date of the most recent commit touching filePath
func (gh *GitHubClient) LastModified(ctx context.Context, filePath string) (time.Time, error) {
	resp, err := gh.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"owner": gh.Owner,
			"repo":  gh.Repo,
		}).
		SetQueryParams(map[string]string{
			"path":     filePath,
			"sha":      gh.Branch,
			"per_page": "1",
		}).
		Get("/repos/{owner}/{repo}/commits")
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get commits for %s: %w", filePath, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return time.Time{}, fmt.Errorf("get commits for %s failed: status %d", filePath, resp.StatusCode())
	}

	var commits []GitHubCommit
	if err := json.Unmarshal(resp.Body(), &commits); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse commits for %s: %w", filePath, err)
	}

	if len(commits) == 0 {
		return time.Time{}, fmt.Errorf("no commits found for %s", filePath)
	}

	date := commits[0].Commit.Committer.Date
	if date.IsZero() {
		date = commits[0].Commit.Author.Date
	}
	if date.IsZero() {
		return time.Time{}, fmt.Errorf("commit %s for %s has no date", commits[0].SHA, filePath)
	}

	return date, nil
}

func escapePath(p string) string {
	if p == "" {
		return ""
	}
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
