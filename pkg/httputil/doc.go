// Package httputil provides the HTTP plumbing used to fetch remote catalogs.
//
// # Overview
//
//   - [Client]: GET requests with a timeout, default headers, status
//     classification and observability hooks
//   - [Retry]: automatic retry with exponential backoff for transient failures
//
// # Retry
//
// Only errors wrapped in [RetryableError] are retried. [Client] wraps network
// failures and 5xx responses; 404 and other 4xx responses fail immediately:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    body, err = client.Get(ctx, url)
//	    return err
//	})
package httputil
