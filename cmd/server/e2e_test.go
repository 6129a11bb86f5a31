package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite runs against a live service started with a migrated database.
type E2ETestSuite struct {
	suite.Suite
	baseURL string
	client  *http.Client
	ctx     context.Context
	suffix  string
}

func TestE2ESuite(t *testing.T) {
	if os.Getenv("E2E_TEST") != "true" {
		t.Skip("Skipping E2E test. Set E2E_TEST=true to run.")
	}
	suite.Run(t, new(E2ETestSuite))
}

func (s *E2ETestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.baseURL = "http://" + getEnv("HTTP_ADDR", "localhost:8080")
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.suffix = time.Now().Format("150405.000")

	s.waitForServer()
}

func (s *E2ETestSuite) waitForServer() {
	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			s.T().Fatal("Server not ready within timeout")
		default:
			status, _ := s.call(http.MethodGet, "/readyz", nil)
			if status == http.StatusOK {
				return
			}
			time.Sleep(500 * time.Millisecond)
		}
	}
}

func (s *E2ETestSuite) call(method, path string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(s.ctx, method, s.baseURL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := os.Getenv("E2E_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, data
}

func (s *E2ETestSuite) createStatus(name string) int64 {
	status, body := s.call(http.MethodPost, "/api/v1/uom-status", map[string]any{
		"name":        name,
		"description": "Created by E2E test",
	})
	s.Require().Equal(http.StatusCreated, status, string(body))

	var created struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(body, &created))
	return created.ID
}

func (s *E2ETestSuite) TestStatusLifecycle() {
	name := "E2E " + s.suffix
	id := s.createStatus(name)

	status, body := s.call(http.MethodPost, "/api/v1/uom-status", map[string]any{"name": name})
	s.Equal(http.StatusConflict, status, string(body))

	status, _ = s.call(http.MethodPatch, fmt.Sprintf("/api/v1/uom-status/%d/status?isUsable=false", id), nil)
	s.Equal(http.StatusNoContent, status)

	status, body = s.call(http.MethodGet, fmt.Sprintf("/api/v1/uom-status/%d", id), nil)
	s.Require().Equal(http.StatusOK, status)
	s.JSONEq(fmt.Sprintf(`{"id":%d,"name":%q,"description":"Created by E2E test","isUsable":false}`, id, name), string(body))

	status, _ = s.call(http.MethodDelete, fmt.Sprintf("/api/v1/uom-status/%d", id), nil)
	s.Equal(http.StatusNoContent, status)

	status, _ = s.call(http.MethodGet, fmt.Sprintf("/api/v1/uom-status/%d", id), nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *E2ETestSuite) TestUOMLifecycle() {
	statusID := s.createStatus("E2E UOM " + s.suffix)
	name := "E2E Unit " + s.suffix

	status, body := s.call(http.MethodPost, "/api/v1/uom", map[string]any{
		"name":                   name,
		"conversionFactorToBase": 2.5,
		"uomStatusId":            statusID,
	})
	s.Require().Equal(http.StatusCreated, status, string(body))
	s.Contains(string(body), `"conversionFactorToBase":2.500`)

	var created struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(body, &created))

	status, _ = s.call(http.MethodGet, "/api/v1/uom/check-name?name="+"e2e%20unit%20"+s.suffix, nil)
	s.Equal(http.StatusOK, status)

	// Referenced statuses cannot be deleted.
	status, body = s.call(http.MethodDelete, fmt.Sprintf("/api/v1/uom-status/%d", statusID), nil)
	s.Equal(http.StatusInternalServerError, status, string(body))

	status, _ = s.call(http.MethodDelete, fmt.Sprintf("/api/v1/uom/%d", created.ID), nil)
	s.Equal(http.StatusNoContent, status)

	status, _ = s.call(http.MethodDelete, fmt.Sprintf("/api/v1/uom-status/%d", statusID), nil)
	s.Equal(http.StatusNoContent, status)
}

func (s *E2ETestSuite) TestListPaging() {
	status, body := s.call(http.MethodGet, "/api/v1/uom?page=0&size=5&sort=name,asc", nil)
	s.Require().Equal(http.StatusOK, status, string(body))

	var page struct {
		Size  int  `json:"size"`
		First bool `json:"first"`
	}
	require.NoError(s.T(), json.Unmarshal(body, &page))
	s.Equal(5, page.Size)
	s.True(page.First)
}

func (s *E2ETestSuite) TestNotFound() {
	status, body := s.call(http.MethodGet, "/api/v1/uom/999999999", nil)
	s.Equal(http.StatusNotFound, status)

	var payload struct {
		Code int `json:"code"`
	}
	s.Require().NoError(json.Unmarshal(body, &payload))
	s.Equal(1004, payload.Code)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
