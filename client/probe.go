package client

import (
	"context"
	"net/http"
	"time"

	aguiagent "github.com/contextablemark/home-agui-agent"
)

// Probe verifies the endpoint is reachable with a HEAD request, bearer
// token included. Any HTTP response counts as reachable; protocol
// validation happens on the first real run. It never touches conversation
// state.
func (c *Client) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultProbeTimeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.endpoint, nil)
	if err != nil {
		return aguiagent.NewTransportError("failed to create probe request", err)
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		probeErr := aguiagent.NewTransportError("endpoint probe failed", err)
		emit(c.events, Event{Type: EventProbe, Duration: time.Since(start), Error: probeErr})
		return probeErr
	}
	resp.Body.Close()

	c.log.WithField("status", resp.StatusCode).Debug("endpoint probe succeeded")
	emit(c.events, Event{Type: EventProbe, Duration: time.Since(start)})
	return nil
}
