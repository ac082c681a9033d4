package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bobmcallan/linweb-api/internal/models"
)

// GetValue reads a single column of the profile row keyed by email.
// A null or missing value reads as the empty string.
func (c *Client) GetValue(ctx context.Context, email, column string) (string, error) {
	query := url.Values{
		"select": {column},
		"email":  {"eq." + email},
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/rest/v1/"+userInfoTable, query, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", acceptSingleObject)

	respBody, status, err := c.do(req)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("profile read returned %d: %s", status, string(respBody))
	}

	var row map[string]any
	if err := json.Unmarshal(respBody, &row); err != nil {
		return "", fmt.Errorf("failed to parse profile row: %w", err)
	}

	switch v := row[column].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return fmt.Sprint(v), nil
	}
}

// SetValues updates the given columns of the profile row keyed by email.
// An update matching zero rows is indistinguishable from success.
func (c *Client) SetValues(ctx context.Context, email string, fields map[string]any) error {
	query := url.Values{"email": {"eq." + email}}

	req, err := c.newRequest(ctx, http.MethodPatch, "/rest/v1/"+userInfoTable, query, fields)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=minimal")

	respBody, status, err := c.do(req)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return fmt.Errorf("profile update returned %d: %s", status, string(respBody))
	}

	return nil
}

// GetProduct reads the subscription columns of the profile row keyed by email.
func (c *Client) GetProduct(ctx context.Context, email string) (*models.ProductInfo, error) {
	query := url.Values{
		"select": {models.ColumnProductToken + "," + models.ColumnProductPeriod},
		"email":  {"eq." + email},
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/rest/v1/"+userInfoTable, query, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptSingleObject)

	respBody, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("profile read returned %d: %s", status, string(respBody))
	}

	return parseProductRow(respBody)
}

// UpdateProductToken persists a freshly generated product token and returns
// the resulting subscription columns in one round trip.
func (c *Client) UpdateProductToken(ctx context.Context, email, token string) (*models.ProductInfo, error) {
	query := url.Values{
		"select": {models.ColumnProductToken + "," + models.ColumnProductPeriod},
		"email":  {"eq." + email},
	}
	fields := map[string]any{models.ColumnProductToken: token}

	req, err := c.newRequest(ctx, http.MethodPatch, "/rest/v1/"+userInfoTable, query, fields)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptSingleObject)
	req.Header.Set("Prefer", "return=representation")

	respBody, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("token update returned %d: %s", status, string(respBody))
	}

	return parseProductRow(respBody)
}

// GetVersion reads the program version row. Returns nil when the stored
// version is null.
func (c *Client) GetVersion(ctx context.Context) (*string, error) {
	query := url.Values{"select": {"version"}}

	req, err := c.newRequest(ctx, http.MethodGet, "/rest/v1/"+versionTable, query, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptSingleObject)

	respBody, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("version read returned %d: %s", status, string(respBody))
	}

	var row struct {
		Version *string `json:"version"`
	}
	if err := json.Unmarshal(respBody, &row); err != nil {
		return nil, fmt.Errorf("failed to parse version row: %w", err)
	}

	return row.Version, nil
}

func parseProductRow(body []byte) (*models.ProductInfo, error) {
	var row struct {
		Token  *string `json:"product_token"`
		Period any     `json:"product_period"`
	}
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, fmt.Errorf("failed to parse profile row: %w", err)
	}

	return &models.ProductInfo{
		Token:  row.Token,
		Period: coercePeriod(row.Period),
	}, nil
}

// coercePeriod projects the stored truthy value to 1/0: null, false, zero and
// the empty string are 0, everything else 1.
func coercePeriod(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		if t {
			return 1
		}
		return 0
	case float64:
		if t != 0 {
			return 1
		}
		return 0
	case string:
		if t != "" {
			return 1
		}
		return 0
	default:
		return 1
	}
}
