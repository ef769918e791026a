package blobsink

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/storage"
	"github.com/go-kit/kit/log"
	"github.com/pkg/errors"
)

// SleepFunc pauses the execution for at least duration d.
type SleepFunc func(d time.Duration)

var (
	// ActualSleep uses actual time to pause the execution.
	ActualSleep SleepFunc = time.Sleep
)

const (
	// time to sleep between retries is an exponential backoff formula:
	//   t(n) = k * m^n
	appendRetryN = 4 // how many times we try the append
	appendRetryK = time.Millisecond * 500
	appendRetryM = 2
)

// withRetries calls fn until it succeeds, fails with an error that is not
// transient, or runs out of attempts. The last error is returned.
//
// It sleeps in exponentially increasing durations between retries.
func withRetries(ctx *log.Context, sf SleepFunc, fn func() error) error {
	var lastErr error
	for n := 0; n < appendRetryN; n++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		ctx.Log("warning", fmt.Sprintf("error on attempt %v: %v", n+1, lastErr))

		if !isTransient(lastErr) {
			ctx.Log("message", "non-transient error occurred, skipping retries")
			break
		}

		if n < appendRetryN-1 {
			// have more retries to go, sleep before retrying
			slp := appendRetryK * time.Duration(int(math.Pow(float64(appendRetryM), float64(n))))
			sf(slp)
		}
	}
	return lastErr
}

func isTransient(err error) bool {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return isTransientHTTPStatusCode(respErr.StatusCode)
	}

	var storageErr storage.AzureStorageServiceError
	if errors.As(err, &storageErr) {
		return isTransientHTTPStatusCode(storageErr.StatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

func isTransientHTTPStatusCode(statusCode int) bool {
	switch statusCode {
	case
		http.StatusRequestTimeout,      // 408
		http.StatusTooManyRequests,     // 429
		http.StatusInternalServerError, // 500
		http.StatusBadGateway,          // 502
		http.StatusServiceUnavailable,  // 503
		http.StatusGatewayTimeout:      // 504
		return true
	default:
		return false
	}
}
