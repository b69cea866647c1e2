package client

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
)

// RetryPolicy is the opt-in retry behavior. MaxRetries of 0 disables it.
type RetryPolicy struct {
	MaxRetries int
	MinWait    time.Duration
	MaxWait    time.Duration
}

// applyRetry wires retryablehttp's policy and backoff into resty. Network
// errors, 429 and 5xx (except 501) are retried.
func applyRetry(r *resty.Client, policy RetryPolicy, onRetry func(method string)) {
	if policy.MaxRetries <= 0 {
		r.SetRetryCount(0)
		return
	}

	r.SetRetryCount(policy.MaxRetries).
		SetRetryWaitTime(policy.MinWait).
		SetRetryMaxWaitTime(policy.MaxWait).
		AddRetryCondition(shouldRetry).
		SetRetryAfter(func(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
			raw, attempt := rawResponse(resp)
			return retryablehttp.DefaultBackoff(policy.MinWait, policy.MaxWait, attempt, raw), nil
		}).
		AddRetryHook(func(resp *resty.Response, _ error) {
			if onRetry != nil && resp != nil && resp.Request != nil {
				onRetry(resp.Request.Method)
			}
		})
}

func shouldRetry(resp *resty.Response, err error) bool {
	ctx := context.Background()
	if resp != nil && resp.Request != nil {
		ctx = resp.Request.Context()
	}
	raw, _ := rawResponse(resp)
	if raw == nil && err == nil {
		return false
	}

	retry, _ := retryablehttp.DefaultRetryPolicy(ctx, raw, err)
	return retry
}

func rawResponse(resp *resty.Response) (*http.Response, int) {
	if resp == nil {
		return nil, 0
	}
	attempt := 0
	if resp.Request != nil {
		attempt = resp.Request.Attempt
	}
	return resp.RawResponse, attempt
}
