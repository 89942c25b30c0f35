package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// EventmiClient talks to a running eventmi server the way a browser would:
// url-encoded forms, cookies and redirects are followed.
type EventmiClient struct {
	baseURL   *url.URL
	userAgent string
	token     string
	client    *http.Client
}

func NewEventmiClient(baseURL string, userAgent string) (*EventmiClient, error) {
	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &EventmiClient{
		baseURL:   parsed,
		userAgent: userAgent,
		client:    &http.Client{Jar: jar, Timeout: defaultTimeout},
	}, nil
}

// WithToken returns a copy of the client that authenticates with the given bearer token.
func (c *EventmiClient) WithToken(token string) *EventmiClient {
	copied := *c
	copied.token = token
	return &copied
}

// WithHTTPClient replaces the underlying http client, e.g. with an httptest server's client.
func (c *EventmiClient) WithHTTPClient(httpClient *http.Client) *EventmiClient {
	copied := *c
	copied.client = httpClient
	return &copied
}

type RequestArgs struct {
	Endpoint    string
	Method      string
	PathParams  []any
	QueryParams map[string]string
	Form        url.Values
	Headers     map[string]string
}

func (c *EventmiClient) NewRequest(ctx context.Context, requestArgs RequestArgs) (*http.Request, error) {
	method := requestArgs.Method
	if method == "" {
		method = http.MethodGet
	}
	requestUrl := c.baseURL.ResolveReference(&url.URL{Path: c.baseURL.Path + fmt.Sprintf(requestArgs.Endpoint, requestArgs.PathParams...)})
	if requestArgs.QueryParams != nil {
		query := requestUrl.Query()
		for k, v := range requestArgs.QueryParams {
			query.Add(k, v)
		}
		requestUrl.RawQuery = query.Encode()
	}

	var body io.Reader
	if requestArgs.Form != nil {
		body = strings.NewReader(requestArgs.Form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, requestUrl.String(), body)
	if err != nil {
		return nil, err
	}
	if requestArgs.Form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range requestArgs.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

func (c *EventmiClient) SendRequest(ctx context.Context, requestArgs RequestArgs) (*http.Response, error) {
	req, err := c.NewRequest(ctx, requestArgs)
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}

// Status sends the request, drains the body and returns the final status code.
func (c *EventmiClient) Status(ctx context.Context, requestArgs RequestArgs) (int, error) {
	resp, err := c.SendRequest(ctx, requestArgs)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
