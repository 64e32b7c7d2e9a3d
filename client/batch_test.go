package client_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dcite/mds/apierr"
	"github.com/jarcoal/httpmock"
)

func TestResolveMany_Happy(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	dois := []string{"10.5072/a", "10.5072/b", "10.5072/c", "10.5072/d"}
	for _, doi := range dois {
		httpmock.RegisterResponder("GET", "https://mds.datacite.org/doi/"+doi,
			httpmock.NewStringResponder(200, "https://example.org/"+doi))
	}

	c := newTestClient(t)
	got, err := c.ResolveMany(context.Background(), dois, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(dois) {
		t.Fatalf("resolved %d, want %d: %v", len(got), len(dois), got)
	}
	for _, doi := range dois {
		if got[doi] != "https://example.org/"+doi {
			t.Fatalf("got[%s] = %q", doi, got[doi])
		}
	}
}

func TestResolveMany_OneFailureSurfacesClassifiedError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://mds.datacite.org/doi/10.5072/ok",
		httpmock.NewStringResponder(200, "https://example.org/ok"))
	httpmock.RegisterResponder("GET", "https://mds.datacite.org/doi/10.5072/bad",
		httpmock.NewStringResponder(404, "DOI not found"))

	c := newTestClient(t)
	_, err := c.ResolveMany(context.Background(), []string{"10.5072/ok", "10.5072/bad"}, 0)
	if err == nil {
		t.Fatalf("expected error")
	}

	// the failing DOI is named and the classified error stays reachable
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, want to wrap *apierr.Error", err)
	}
	if apiErr.Kind != apierr.KindNotFound {
		t.Fatalf("Kind = %v, want not found", apiErr.Kind)
	}
}

func TestResolveMany_IndependentErrors(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	// different codes resolved concurrently must classify independently
	codes := map[string]int{"10.5072/gone": 410, "10.5072/forbidden": 403, "10.5072/busy": 500}
	for doi, status := range codes {
		httpmock.RegisterResponder("GET", "https://mds.datacite.org/doi/"+doi,
			httpmock.NewStringResponder(status, fmt.Sprintf("status %d", status)))
	}

	c := newTestClient(t)
	for doi, status := range codes {
		_, err := c.ResolveDOI(context.Background(), doi)
		var apiErr *apierr.Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("%s: error is %T", doi, err)
		}
		if want := fmt.Sprintf("%d", status); apiErr.Code != want {
			t.Fatalf("%s: Code = %q, want %q", doi, apiErr.Code, want)
		}
	}
}
