// Package httpdelete sends the cache invalidation requests of the broadcaster.
package httpdelete

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"mymesh/helpers"
)

// Deleter issues HTTP DELETE requests. Implements interfaces.Deleter.
type Deleter struct {
	client *http.Client
}

// NewDeleter creates a Deleter over client. Panics on nil client.
func NewDeleter(client *http.Client) *Deleter {
	return &Deleter{client: helpers.NilPanic(client, "adapters.httpdelete.deleter.go: http client is required")}
}

// Delete sends DELETE url, forwarding the request id of ctx. Any non-2xx answer is an error.
func (d *Deleter) Delete(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	if id := helpers.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(helpers.HeaderRequestID, id)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("DELETE %s returned %d", url, resp.StatusCode)
	}
	return nil
}
