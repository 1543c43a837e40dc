// Package actuation provides the adapters behind the Mover and Turner
// ports: an HTTP client for the robot's trajectory-tracking service and a
// mock robot for tests.
package actuation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"routine-planner-service/internal/domain"
)

// RobotClient implements Mover and Turner against the robot's HTTP
// actuation service.
//
// Both calls block until the robot reports the profile complete (or fails),
// matching the synchronous dispatch the controller expects. The caller's
// context deadline bounds the whole call including retries.
//
// The client is safe for concurrent use.
type RobotClient struct {
	session *http.Client
	baseURL string
}

func NewRobotClient(baseURL string, timeout time.Duration) (*RobotClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("robot client: base url is empty")
	}

	return &RobotClient{
		session: &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}, nil
}

type waypointPayload struct {
	ID int     `json:"id"`
	X  int     `json:"x"`
	Y  int     `json:"y"`
	T  float64 `json:"t"`
	Dt float64 `json:"dt"`
}

type turnRefPayload struct {
	ID  int     `json:"id"`
	Yaw float64 `json:"yaw"`
	T   float64 `json:"t"`
	Dt  float64 `json:"dt"`
}

type moveRequest struct {
	Waypoints []waypointPayload `json:"waypoints"`
}

type turnRequest struct {
	TurnRefs []turnRefPayload `json:"turn_refs"`
}

// Move commands the robot through an ordered list of position setpoints.
func (c *RobotClient) Move(ctx context.Context, samples []domain.MotionSample) error {
	req := moveRequest{Waypoints: make([]waypointPayload, 0, len(samples))}
	for _, s := range samples {
		req.Waypoints = append(req.Waypoints, waypointPayload{
			ID: s.Index, X: s.Position.X, Y: s.Position.Y, T: s.TimeS, Dt: s.StepS,
		})
	}

	if err := c.post(ctx, "/robot/move", req); err != nil {
		return fmt.Errorf("robot move: %w", err)
	}
	return nil
}

// Turn commands the robot through an ordered list of yaw setpoints.
func (c *RobotClient) Turn(ctx context.Context, samples []domain.TurnSample) error {
	req := turnRequest{TurnRefs: make([]turnRefPayload, 0, len(samples))}
	for _, s := range samples {
		req.TurnRefs = append(req.TurnRefs, turnRefPayload{
			ID: s.Index, Yaw: s.AngleDeg, T: s.TimeS, Dt: s.StepS,
		})
	}

	if err := c.post(ctx, "/robot/turn", req); err != nil {
		return fmt.Errorf("robot turn: %w", err)
	}
	return nil
}

func (c *RobotClient) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return err
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (c *RobotClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 5xx responses)
// using exponential backoff while respecting context cancellation. A 4xx
// response is a hard dispatch failure and is not retried.
func (c *RobotClient) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
