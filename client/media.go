package client

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Media returns the media type to URL associations registered for a DOI.
func (c *Client) Media(ctx context.Context, doi string) (map[string]string, error) {
	if strings.TrimSpace(doi) == "" {
		return nil, fmt.Errorf("get media: doi is required")
	}
	data, err := c.doWithRetry(ctx, http.MethodGet, "media/"+doi, "", nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("get media: %w", err)
	}

	media := make(map[string]string)
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		mime, target, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("get media: malformed line %q", line)
		}
		media[mime] = target
	}
	return media, nil
}

// StoreMedia replaces the media associations for a DOI.
func (c *Client) StoreMedia(ctx context.Context, doi string, media map[string]string) error {
	if strings.TrimSpace(doi) == "" {
		return fmt.Errorf("store media: doi is required")
	}
	if len(media) == 0 {
		return fmt.Errorf("store media: no associations given")
	}

	// deterministic body, one mime=url pair per line
	mimes := make([]string, 0, len(media))
	for mime := range media {
		mimes = append(mimes, mime)
	}
	sort.Strings(mimes)

	var b strings.Builder
	for _, mime := range mimes {
		fmt.Fprintf(&b, "%s=%s\n", mime, media[mime])
	}

	_, err := c.doWithRetry(ctx, http.MethodPost, "media/"+doi, "text/plain;charset=UTF-8", []byte(b.String()), http.StatusOK)
	if err != nil {
		return fmt.Errorf("store media: %w", err)
	}
	return nil
}
