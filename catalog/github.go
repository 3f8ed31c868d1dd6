package catalog

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
)

// GitHubStore persists the catalog through the GitHub contents API. Every
// Replace re-reads the file SHA and commits a full overwrite on top of it.
type GitHubStore struct {
	logger *gecho.Logger
	cfg    *structs.CatalogConfig
	client *http.Client

	owner string
	repo  string
}

func NewGitHubStore(logger *gecho.Logger, cfg *structs.CatalogConfig) *GitHubStore {
	owner, repo, _ := strings.Cut(cfg.Repo, "/")

	return &GitHubStore{
		logger: logger,
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		owner:  owner,
		repo:   repo,
	}
}

func (s *GitHubStore) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		strings.TrimSuffix(s.cfg.APIBaseURL, "/"), s.owner, s.repo, s.cfg.FilePath)
}

func (s *GitHubStore) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
}

type contentsResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

// fetchContents retrieves the raw catalog file and its blob SHA.
func (s *GitHubStore) fetchContents(ctx context.Context) (*contentsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.contentsURL()+"?ref="+s.cfg.Branch, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build contents request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp, "failed to load products"),
		}
	}

	var contents contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&contents); err != nil {
		return nil, fmt.Errorf("failed to decode contents response: %w", err)
	}

	return &contents, nil
}

func (s *GitHubStore) Load(ctx context.Context) ([]structs.Product, error) {
	startTime := time.Now()

	contents, err := s.fetchContents(ctx)
	if err != nil {
		return nil, err
	}

	// The contents API wraps base64 at 60 columns.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(contents.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog file content: %w", err)
	}

	var products []structs.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	s.logger.Debug("Catalog loaded from remote store",
		gecho.Field("count", len(products)),
		gecho.Field("duration", time.Since(startTime)),
	)
	return products, nil
}

func (s *GitHubStore) Replace(ctx context.Context, products []structs.Product) error {
	startTime := time.Now()

	// The prior SHA is required by the contents API; this is a compare-and-set
	// on the file blob, not an application-level concurrency token.
	contents, err := s.fetchContents(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve catalog file sha: %w", err)
	}

	serialized, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize catalog: %w", err)
	}

	payload := map[string]any{
		"message": "Update products catalog",
		"content": base64.StdEncoding.EncodeToString(serialized),
		"branch":  s.cfg.Branch,
		"sha":     contents.SHA,
		"committer": map[string]string{
			"name":  s.cfg.CommitterName,
			"email": s.cfg.CommitterEmail,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize commit payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.contentsURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build commit request: %w", err)
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp, "update failed"),
		}
	}

	s.logger.Info("Catalog replaced in remote store",
		gecho.Field("count", len(products)),
		gecho.Field("bytes", len(serialized)),
		gecho.Field("duration", time.Since(startTime)),
	)
	return nil
}
