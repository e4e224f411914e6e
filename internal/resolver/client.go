package resolver

// Package resolver produces normalized product records from ordered data
// sources with graceful degradation.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/baldecash-team/baldecash-sub002/internal/catalog"
	"github.com/baldecash-team/baldecash-sub002/internal/observability"
)

const defaultRequestTimeout = 10 * time.Second

// Client talks to the landing catalog API. Detail and list endpoints are
// independent; a failure on one says nothing about the other.
type Client struct {
	baseURL    string
	slug       string
	pageSize   int
	httpClient *http.Client
}

func NewClient(baseURL, slug string, pageSize int) *Client {
	return &Client{
		baseURL:    baseURL,
		slug:       slug,
		pageSize:   pageSize,
		httpClient: observability.NewHTTPClient(defaultRequestTimeout),
	}
}

// FetchDetail fetches a single fully-detailed record by id.
func (c *Client) FetchDetail(ctx context.Context, id string) (*catalog.APIDetailProduct, error) {
	endpoint := fmt.Sprintf("%s/landing/%s/products/%s", c.baseURL, url.PathEscape(c.slug), url.PathEscape(id))

	var detail catalog.APIDetailProduct
	if err := c.getJSON(ctx, endpoint, &detail); err != nil {
		return nil, err
	}
	if detail.ID == "" {
		return nil, fmt.Errorf("detail response for %s has no product id", id)
	}
	return &detail, nil
}

// FetchList fetches the bounded product list for the landing context.
func (c *Client) FetchList(ctx context.Context) ([]catalog.APIListItem, error) {
	endpoint := fmt.Sprintf("%s/landing/%s/products?page_size=%s", c.baseURL, url.PathEscape(c.slug), strconv.Itoa(c.pageSize))

	var list struct {
		Items []catalog.APIListItem `json:"items"`
	}
	if err := c.getJSON(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
