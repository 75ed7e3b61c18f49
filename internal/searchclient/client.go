// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package searchclient talks to a running storefront's public JSON API.
// Its Client satisfies catalog.Searcher, so the live catalog controller can
// run against a remote store the same way the server runs it against
// PostgreSQL.
package searchclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"reposteria/internal/catalog"
	"reposteria/internal/models"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 4 << 20

// ErrBothBounds is returned for criteria carrying a minimum and a maximum
// price at once; the API accepts a single bound.
var ErrBothBounds = errors.New("searchclient: price_min and price_max are mutually exclusive")

// searchResponse is the part of the search endpoint's body the client uses.
type searchResponse struct {
	Products []models.Product `json:"products"`
}

// Client is an HTTP client for /api/categories and /api/products/search.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the storefront at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Categories fetches every category with its product count.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.get(ctx, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// SearchProducts runs a catalog search. The criteria are encoded as the
// catalog URL parameters.
func (c *Client) SearchProducts(ctx context.Context, criteria catalog.Criteria) ([]models.Product, error) {
	params, err := EncodeCriteria(criteria)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := c.get(ctx, "/api/products/search", params, &resp); err != nil {
		return nil, err
	}
	if resp.Products == nil {
		return []models.Product{}, nil
	}
	return resp.Products, nil
}

// EncodeCriteria converts search criteria to catalog URL parameters.
func EncodeCriteria(criteria catalog.Criteria) (url.Values, error) {
	if criteria.PriceMin != nil && criteria.PriceMax != nil {
		return nil, ErrBothBounds
	}

	v := url.Values{}
	if criteria.Query != nil {
		v.Set(catalog.ParamQuery, *criteria.Query)
	}
	if criteria.CategoryID != nil {
		v.Set(catalog.ParamCategory, *criteria.CategoryID)
	}
	switch {
	case criteria.PriceMin != nil:
		v.Set(catalog.ParamMode, string(catalog.PriceModeMin))
		v.Set(catalog.ParamPrice, strconv.FormatFloat(*criteria.PriceMin, 'f', -1, 64))
	case criteria.PriceMax != nil:
		v.Set(catalog.ParamMode, string(catalog.PriceModeMax))
		v.Set(catalog.ParamPrice, strconv.FormatFloat(*criteria.PriceMax, 'f', -1, 64))
	}
	if criteria.AvailableOnly {
		v.Set(catalog.ParamInStock, "1")
	}
	return v, nil
}

// get performs a GET against the API and decodes a JSON body into dst.
func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("searchclient request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("searchclient http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("searchclient read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return &StatusError{Code: resp.StatusCode, Message: apiErr.Error}
		}
		return &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("searchclient unmarshal: %w", err)
	}
	return nil
}

// StatusError is a non-200 response from the API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("searchclient: API error (status %d): %s", e.Code, e.Message)
}
