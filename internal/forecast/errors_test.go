package forecast

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		status int
		want   Kind
	}{
		{200, KindOK},
		{204, KindOK},
		{429, KindRateLimited},
		{403, KindForbidden},
		{404, KindNotFound},
		{500, KindServerError},
		{503, KindServiceUnavailable},
		{418, KindUnknownHTTP},
		{502, KindUnknownHTTP},
	}

	for _, tc := range cases {
		if got := ClassifyStatus(tc.status); got != tc.want {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, got)
		}
	}
}

func TestStatusErrorKeepsStatus(t *testing.T) {
	err := StatusError(418)
	if err.Kind != KindUnknownHTTP {
		t.Fatalf("expected unknown http kind, got %v", err.Kind)
	}
	if err.Status != 418 {
		t.Fatalf("expected status 418, got %d", err.Status)
	}
}

func TestClassifyErr(t *testing.T) {
	if kind := ClassifyErr(context.DeadlineExceeded).Kind; kind != KindTimeout {
		t.Fatalf("deadline exceeded should classify as timeout, got %v", kind)
	}

	if kind := ClassifyErr(errors.New("connection refused")).Kind; kind != KindConnectionFailed {
		t.Fatalf("plain transport error should classify as connection failed, got %v", kind)
	}

	// Already-classified errors pass through, even wrapped.
	orig := StatusError(429)
	wrapped := fmt.Errorf("fetch failed: %w", orig)
	if got := ClassifyErr(wrapped); got.Kind != KindRateLimited {
		t.Fatalf("wrapped classified error lost its kind: %v", got.Kind)
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != KindOK {
		t.Fatalf("nil error should be ok")
	}
	if KindOf(Errf(KindQuotaExhausted, "ceiling")) != KindQuotaExhausted {
		t.Fatalf("domain error kind not extracted")
	}
	if KindOf(errors.New("boom")) != KindConnectionFailed {
		t.Fatalf("unclassified error should default to connection failed")
	}
}
