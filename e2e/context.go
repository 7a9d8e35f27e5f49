package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TestContext carries one scenario's HTTP state against a running server.
type TestContext struct {
	BaseURL     string
	AccessToken string

	client     *http.Client
	lastStatus int
	lastBody   []byte
	remembered map[string]string
}

// NewTestContext targets baseURL. The token, when set, is sent on every request.
func NewTestContext(baseURL, token string) *TestContext {
	return &TestContext{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		AccessToken: token,
		client:      &http.Client{Timeout: 10 * time.Second},
		remembered:  make(map[string]string),
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.remembered = make(map[string]string)
}

func (tc *TestContext) Do(method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, tc.BaseURL+tc.Expand(path), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.AccessToken)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.lastStatus = resp.StatusCode
	tc.lastBody, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) Status() int {
	return tc.lastStatus
}

func (tc *TestContext) Body() []byte {
	return tc.lastBody
}

// GetResponseField returns a top-level field of the last JSON object response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var obj map[string]any
	if err := json.Unmarshal(tc.lastBody, &obj); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %s", tc.lastBody)
	}
	v, ok := obj[field]
	if !ok {
		return nil, fmt.Errorf("response has no field %q: %s", field, tc.lastBody)
	}
	return v, nil
}

func (tc *TestContext) Remember(key, value string) {
	tc.remembered[key] = value
}

// Expand replaces {key} placeholders with remembered values.
func (tc *TestContext) Expand(s string) string {
	for k, v := range tc.remembered {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}
