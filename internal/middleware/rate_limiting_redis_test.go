//go:build integration_test || all_tests

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/fitsuggest/internal/middleware"
	testingpkg "github.com/2beens/fitsuggest/pkg/testing"

	"github.com/go-redis/redis_rate/v9"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit_Redis(t *testing.T) {
	_, rdb := testingpkg.RedisClient(t)
	handler := middleware.RateLimit(redis_rate.NewLimiter(rdb), "suggest-test", 2, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/suggest/schedule", nil)
		req.RemoteAddr = "10.9.9.9:1000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
