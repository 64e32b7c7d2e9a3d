package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ResolveDOI returns the URL a DOI currently points at.
// A known-but-unresolvable DOI comes back as a no-content classified error.
func (c *Client) ResolveDOI(ctx context.Context, doi string) (string, error) {
	if strings.TrimSpace(doi) == "" {
		return "", fmt.Errorf("resolve doi: doi is required")
	}
	target, err := c.doWithRetry(ctx, http.MethodGet, "doi/"+doi, "", nil, http.StatusOK)
	if err != nil {
		return "", fmt.Errorf("resolve doi: %w", err)
	}
	return target, nil
}

// RegisterDOI mints a DOI or moves an existing one to a new URL. Metadata for
// the DOI must already be stored, or MDS answers with a precondition failure.
func (c *Client) RegisterDOI(ctx context.Context, doi, target string) error {
	if strings.TrimSpace(doi) == "" {
		return fmt.Errorf("register doi: doi is required")
	}
	u, err := url.ParseRequestURI(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("register doi: invalid target URL %q", target)
	}

	// MDS wants exactly two lines: the DOI and the landing URL.
	body := fmt.Sprintf("doi=%s\nurl=%s", doi, target)
	_, err = c.doWithRetry(ctx, http.MethodPost, "doi", "text/plain;charset=UTF-8", []byte(body), http.StatusCreated)
	if err != nil {
		return fmt.Errorf("register doi: %w", err)
	}
	return nil
}

// ListDOIs returns every DOI minted by the authenticated datacentre.
func (c *Client) ListDOIs(ctx context.Context) ([]string, error) {
	data, err := c.doWithRetry(ctx, http.MethodGet, "doi", "", nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("list dois: %w", err)
	}
	if data == "" {
		return nil, nil
	}
	var dois []string
	for _, line := range strings.Split(data, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			dois = append(dois, line)
		}
	}
	return dois, nil
}
