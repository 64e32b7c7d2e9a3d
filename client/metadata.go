package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Metadata returns the most recent metadata record for a DOI, as stored
// (DataCite XML, passed through verbatim).
func (c *Client) Metadata(ctx context.Context, doi string) ([]byte, error) {
	if strings.TrimSpace(doi) == "" {
		return nil, fmt.Errorf("get metadata: doi is required")
	}
	data, err := c.doWithRetry(ctx, http.MethodGet, "metadata/"+doi, "", nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("get metadata: %w", err)
	}
	return []byte(data), nil
}

// StoreMetadata uploads a metadata record. The DOI is taken from the XML's
// identifier element by MDS; storing metadata is the prerequisite for
// registering the DOI itself.
func (c *Client) StoreMetadata(ctx context.Context, xml []byte) error {
	if len(xml) == 0 {
		return fmt.Errorf("store metadata: empty document")
	}
	_, err := c.doWithRetry(ctx, http.MethodPost, "metadata", "application/xml;charset=UTF-8", xml, http.StatusCreated)
	if err != nil {
		return fmt.Errorf("store metadata: %w", err)
	}
	return nil
}

// DeleteMetadata marks a dataset inactive. Subsequent metadata reads answer
// with a gone classified error until new metadata is stored.
func (c *Client) DeleteMetadata(ctx context.Context, doi string) error {
	if strings.TrimSpace(doi) == "" {
		return fmt.Errorf("delete metadata: doi is required")
	}
	_, err := c.doWithRetry(ctx, http.MethodDelete, "metadata/"+doi, "", nil, http.StatusOK)
	if err != nil {
		return fmt.Errorf("delete metadata: %w", err)
	}
	return nil
}
