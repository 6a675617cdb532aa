package ipc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ItsNotGoodName/x-scroller/internal/build"
	"github.com/ItsNotGoodName/x-scroller/internal/bus"
	"github.com/ItsNotGoodName/x-scroller/internal/command"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
	"github.com/danielgtaylor/huma/v2"
)

// Event names of the event stream.
const (
	EventScroller = "scroller"
	EventTrail    = "trail"
	EventWindow   = "window"
)

// Client talks to a running Server.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client for the server listening on addr (host:port).
func NewClient(addr string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: "http://" + addr,
	}
}

// Command runs line and returns one result per command.
func (c *Client) Command(ctx context.Context, line string) ([]command.Result, error) {
	var results []command.Result
	err := c.do(ctx, http.MethodPost, "/api/command", map[string]string{"command": line}, &results)
	return results, err
}

func (c *Client) Commands(ctx context.Context) ([]string, error) {
	var names []string
	err := c.do(ctx, http.MethodGet, "/api/commands", nil, &names)
	return names, err
}

func (c *Client) Version(ctx context.Context) (build.Build, error) {
	var b build.Build
	err := c.do(ctx, http.MethodGet, "/api/version", nil, &b)
	return b, err
}

func (c *Client) Tree(ctx context.Context) (tree.Info, error) {
	var info tree.Info
	err := c.do(ctx, http.MethodGet, "/api/tree", nil, &info)
	return info, err
}

func (c *Client) Workspaces(ctx context.Context) ([]WorkspaceInfo, error) {
	var list []WorkspaceInfo
	err := c.do(ctx, http.MethodGet, "/api/workspaces", nil, &list)
	return list, err
}

func (c *Client) Trails(ctx context.Context) (TrailsInfo, error) {
	var info TrailsInfo
	err := c.do(ctx, http.MethodGet, "/api/trails", nil, &info)
	return info, err
}

// Events calls fn for every event until ctx is done, the stream ends or fn
// returns an error.
func (c *Client) Events(ctx context.Context, fn func(bus.Event) error) error {
	body, err := c.request(ctx, http.MethodGet, "/api/events", nil, &http.Client{})
	if err != nil {
		return err
	}
	defer body.Close()

	var (
		name string
		data []byte
	)
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if data != nil {
				event, err := decodeEvent(name, data)
				if err != nil {
					return err
				}
				if err := fn(event); err != nil {
					return err
				}
			}
			name, data = "", nil
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimSpace(strings.TrimPrefix(line, "data:"))...)
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return err
	}
	return ctx.Err()
}

func decodeEvent(name string, data []byte) (bus.Event, error) {
	var v any
	switch name {
	case EventScroller:
		v = &bus.ScrollerEvent{}
	case EventTrail:
		v = &bus.TrailEvent{}
	case EventWindow:
		v = &bus.WindowEvent{}
	default:
		v = &json.RawMessage{}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return bus.Event{}, fmt.Errorf("failed to decode %s event: %w", name, err)
	}
	return bus.Event{Name: name, Data: v}, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	body, err := c.request(ctx, method, path, in, c.http)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(out)
}

func (c *Client) request(ctx context.Context, method, path string, in any, client *http.Client) (io.ReadCloser, error) {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, checkStatus(resp)
	}
	return resp.Body, nil
}

// checkStatus turns an error response into the error model the server sent.
func checkStatus(resp *http.Response) error {
	var model huma.ErrorModel
	if err := json.NewDecoder(resp.Body).Decode(&model); err != nil || model.Status == 0 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return &model
}
