//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/fitsuggest/internal/middleware"
)

func (s *IntegrationTestSuite) post(ctx context.Context, path, body string, withKey bool) (int, []byte) {
	return s.do(ctx, http.MethodPost, path, body, withKey)
}

func (s *IntegrationTestSuite) get(ctx context.Context, path string, withKey bool) (int, []byte) {
	return s.do(ctx, http.MethodGet, path, "", withKey)
}

func (s *IntegrationTestSuite) do(ctx context.Context, method, path, body string, withKey bool) (int, []byte) {
	t := s.T()
	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s%s", serverEndpoint, path), bytes.NewBufferString(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent")
	if withKey {
		req.Header.Set(middleware.APIKeyHeader, testAPIKey)
	}

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Logf("close body: %s", err)
		}
	}()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, respBytes
}
