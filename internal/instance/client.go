package instance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/grovetools/ctnotes/errors"
)

// baseURL is the dummy host used for unix socket HTTP requests.
const baseURL = "http://unix"

// Client forwards launch requests to a running instance.
type Client struct {
	httpClient *http.Client
	socketPath string
}

// NewClient creates a client dialing socketPath.
func NewClient(socketPath string) *Client {
	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socketPath)
		},
		IdleConnTimeout: 30 * time.Second,
	}
	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
		socketPath: socketPath,
	}
}

// IsRunning reports whether an instance answers on the socket.
func (c *Client) IsRunning(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Activate asks the running instance to open a new window.
func (c *Client) Activate(ctx context.Context) error {
	return c.post(ctx, "/api/activate", nil)
}

// Open asks the running instance to open paths. Relative paths are resolved
// against the caller's working directory first.
func (c *Client) Open(ctx context.Context, paths []string) error {
	abs := make([]string, 0, len(paths))
	for _, p := range paths {
		a, err := filepath.Abs(p)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInvalidInput, "cannot resolve path").WithDetail("path", p)
		}
		abs = append(abs, a)
	}
	return c.post(ctx, "/api/open", openBody{Paths: abs})
}

// Forward sends Activate for no paths and Open otherwise.
func (c *Client) Forward(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return c.Activate(ctx)
	}
	return c.Open(ctx, paths)
}

func (c *Client) post(ctx context.Context, endpoint string, body interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode request")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.InstanceUnreachable(c.socketPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return errors.InstanceUnreachable(c.socketPath, fmt.Errorf("instance returned status %d", resp.StatusCode))
	}
	return nil
}
