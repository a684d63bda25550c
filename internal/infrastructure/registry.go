package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultRegistryURL is the public npm registry endpoint.
const DefaultRegistryURL = "https://registry.npmjs.org"

// NPMRegistry implements domain.RegistryPort against an npm-compatible
// registry. Failures are expected and tolerated by the caller: the
// dependency collector falls back to pinned versions per package.
type NPMRegistry struct {
	baseURL string
	client  *http.Client
}

func NewNPMRegistry(baseURL string) *NPMRegistry {
	if baseURL == "" {
		baseURL = DefaultRegistryURL
	}
	return &NPMRegistry{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// LatestVersion fetches the version published under the "latest" dist-tag.
func (r *NPMRegistry) LatestVersion(ctx context.Context, pkg string) (string, error) {
	// Scoped package names contain a slash that must survive routing.
	endpoint := fmt.Sprintf("%s/%s/latest", r.baseURL, url.PathEscape(pkg))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("registry returned %d for %s", resp.StatusCode, pkg)
	}

	var payload struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding registry response for %s: %w", pkg, err)
	}
	if payload.Version == "" {
		return "", fmt.Errorf("registry returned no version for %s", pkg)
	}
	return payload.Version, nil
}
