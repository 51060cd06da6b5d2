/**
* Name: 			client.go
* Description: 		지도 타일 서비스 연결 확인
* Workflow: 		API 키 확인, 정적 지도 요청, 응답 상태 검사
 */

package maps

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"NudgePrototype/internal/apperr"
)

// PlaceholderKey is what an unconfigured deployment ships with.
const PlaceholderKey = "YOUR_GOOGLE_MAPS_API_KEY_HERE"

const defaultBaseURL = "https://maps.googleapis.com/maps/api/staticmap"

var ErrUnavailable = fmt.Errorf("maps: %w", apperr.ErrExternalServiceUnavailable)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// 지도 서비스 클라이언트
type Client struct {
	baseURL    string
	apiKey     string
	zoom       int
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, zoom int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		zoom:       zoom,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether a real key is present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.apiKey != PlaceholderKey
}

// Probe asks for a 1x1 static map at center. Any failure is ErrUnavailable.
func (c *Client) Probe(ctx context.Context, center LatLng) error {
	if !c.Configured() {
		return fmt.Errorf("%w: api key not configured", ErrUnavailable)
	}

	q := url.Values{}
	q.Set("center", strconv.FormatFloat(center.Lat, 'f', 6, 64)+","+strconv.FormatFloat(center.Lng, 'f', 6, 64))
	q.Set("zoom", strconv.Itoa(c.zoom))
	q.Set("size", "1x1")
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %s", ErrUnavailable, resp.Status)
	}
	return nil
}
