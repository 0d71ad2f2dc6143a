// Package cms talks to the Strapi REST API that owns user profile records.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	apperrors "saaskit/internal/errors"
	"saaskit/internal/model"
)

const (
	profilesEndpoint = "/api/user-profiles"
	listPageSize     = 100
)

// Client exposes the profile operations of the CMS.
type Client interface {
	FetchProfile(ctx context.Context, clerkID string) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]model.Profile, error)
	UpdateProfile(ctx context.Context, id int, update model.ProfileUpdate) (*model.Profile, error)
	CreateProfile(ctx context.Context, profile model.NewProfile) (*model.Profile, error)
	DeleteProfile(ctx context.Context, id int) error
}

// Config configures the Strapi client.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient builds a Strapi v4 client.
func NewClient(cfg Config) Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: httpClient,
	}
}

type profileQuery struct {
	ClerkID  string `url:"filters[clerkId][$eq]"`
	PageSize int    `url:"pagination[pageSize]"`
}

func (c *client) FetchProfile(ctx context.Context, clerkID string) (*model.Profile, error) {
	values, err := query.Values(profileQuery{ClerkID: clerkID, PageSize: 1})
	if err != nil {
		return nil, err
	}

	var res struct {
		Data []entry `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, profilesEndpoint+"?"+values.Encode(), nil, &res); err != nil {
		return nil, fmt.Errorf("fetch profile %s: %w", clerkID, err)
	}
	if len(res.Data) == 0 {
		return nil, apperrors.ErrProfileNotFound
	}
	return res.Data[0].profile(), nil
}

type listQuery struct {
	Page     int `url:"pagination[page]"`
	PageSize int `url:"pagination[pageSize]"`
}

// ListProfiles walks every page of the profile collection.
func (c *client) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	var out []model.Profile
	for page := 1; ; page++ {
		values, err := query.Values(listQuery{Page: page, PageSize: listPageSize})
		if err != nil {
			return nil, err
		}

		var res struct {
			Data []entry `json:"data"`
			Meta struct {
				Pagination struct {
					PageCount int `json:"pageCount"`
				} `json:"pagination"`
			} `json:"meta"`
		}
		if err := c.do(ctx, http.MethodGet, profilesEndpoint+"?"+values.Encode(), nil, &res); err != nil {
			return nil, fmt.Errorf("list profiles page %d: %w", page, err)
		}
		for i := range res.Data {
			out = append(out, *res.Data[i].profile())
		}
		if len(res.Data) == 0 || page >= res.Meta.Pagination.PageCount {
			return out, nil
		}
	}
}

func (c *client) UpdateProfile(ctx context.Context, id int, update model.ProfileUpdate) (*model.Profile, error) {
	var res struct {
		Data *entry `json:"data"`
	}
	endpoint := fmt.Sprintf("%s/%d", profilesEndpoint, id)
	if err := c.do(ctx, http.MethodPut, endpoint, envelope{Data: update}, &res); err != nil {
		return nil, fmt.Errorf("update profile %d: %w", id, err)
	}
	if res.Data == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return res.Data.profile(), nil
}

func (c *client) CreateProfile(ctx context.Context, profile model.NewProfile) (*model.Profile, error) {
	var res struct {
		Data *entry `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, profilesEndpoint, envelope{Data: profile}, &res); err != nil {
		return nil, fmt.Errorf("create profile %s: %w", profile.ClerkID, err)
	}
	if res.Data == nil {
		return nil, fmt.Errorf("create profile %s: empty response: %w", profile.ClerkID, apperrors.ErrCMSUnavailable)
	}
	return res.Data.profile(), nil
}

func (c *client) DeleteProfile(ctx context.Context, id int) error {
	endpoint := fmt.Sprintf("%s/%d", profilesEndpoint, id)
	if err := c.do(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("delete profile %d: %w", id, err)
	}
	return nil
}

func (c *client) do(ctx context.Context, method, endpoint string, body, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", apperrors.ErrCMSUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: decode response: %v", apperrors.ErrCMSUnavailable, err)
	}
	return nil
}

// APIError is a non-2xx answer from the CMS other than 404.
type APIError struct {
	Status  int
	Name    string
	Message string
}

func (e *APIError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("cms returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("cms returned %d %s: %s", e.Status, e.Name, e.Message)
}

// Unwrap lets callers match APIError against ErrCMSUnavailable.
func (e *APIError) Unwrap() error {
	return apperrors.ErrCMSUnavailable
}

func decodeError(resp *http.Response) error {
	if resp.StatusCode == http.StatusNotFound {
		return apperrors.ErrProfileNotFound
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}

	var payload struct {
		Error *struct {
			Status  int    `json:"status"`
			Name    string `json:"name"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != nil {
		apiErr.Name = payload.Error.Name
		apiErr.Message = payload.Error.Message
	}
	return apiErr
}

// IsAPIError reports whether err carries an APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
