package customizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// PartSelection mirrors the server's selectedParts object.
type PartSelection struct {
	Wheels  string `json:"wheels"`
	Spoiler string `json:"spoiler"`
	Lights  string `json:"lights"`
	Exhaust string `json:"exhaust"`
}

// BuildPayload is the request body for creating or updating a build.
type BuildPayload struct {
	CarModel           string        `json:"carModel"`
	Color              string        `json:"color"`
	SelectedParts      PartSelection `json:"selectedParts"`
	SelectedServices   []string      `json:"selectedServices"`
	ModelName          string        `json:"modelName"`
	ModelImage         string        `json:"modelImage"`
	TotalEstimatedCost int64         `json:"totalEstimatedCost"`
	Notes              string        `json:"notes,omitempty"`
}

// BuildRecord is a build as returned by the server.
type BuildRecord struct {
	ID                 string        `json:"id"`
	UserID             string        `json:"userId"`
	CarModel           string        `json:"carModel"`
	Color              string        `json:"color"`
	SelectedParts      PartSelection `json:"selectedParts"`
	SelectedServices   []string      `json:"selectedServices"`
	ModelName          string        `json:"modelName"`
	ModelImage         string        `json:"modelImage"`
	TotalEstimatedCost int64         `json:"totalEstimatedCost"`
	Notes              string        `json:"notes"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// CarModelSummary is the catalog listing shape the customizer needs.
type CarModelSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Image       string `json:"image"`
	Price       int64  `json:"price"`
	ModelPath   string `json:"modelPath"`
	ListingType string `json:"listingType"`
}

// CatalogService is a modification service from the catalog.
type CatalogService struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
}

// UserInfo identifies the authenticated user.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// APIError is a non-success response from the server, carrying the
// human-readable message from the response envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client is the REST client for the Apex Auto Mods API. The bearer token is
// supplied per request so a login or logout elsewhere takes effect
// immediately; an empty token means anonymous.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      func() string
	services   *catalogCache
}

func NewClient(baseURL string, token func() string) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   15 * time.Second,
		},
		token:    token,
		services: newCatalogCache(5 * time.Minute),
	}
}

type envelope struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Count     int               `json:"count"`
	Build     *BuildRecord      `json:"build"`
	Builds    []BuildRecord     `json:"builds"`
	CarModels []CarModelSummary `json:"carModels"`
	Model     *CarModelSummary  `json:"model"`
	Services  []CatalogService  `json:"services"`
	Service   *CatalogService   `json:"service"`
	User      *UserInfo         `json:"user"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	return &env, nil
}

func (c *Client) CreateBuild(ctx context.Context, payload BuildPayload) (*BuildRecord, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/builds", payload)
	if err != nil {
		return nil, err
	}
	return env.Build, nil
}

func (c *Client) UpdateBuild(ctx context.Context, buildID string, payload BuildPayload) (*BuildRecord, error) {
	env, err := c.do(ctx, http.MethodPut, "/api/builds/"+buildID, payload)
	if err != nil {
		return nil, err
	}
	return env.Build, nil
}

func (c *Client) ListBuilds(ctx context.Context) ([]BuildRecord, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/builds", nil)
	if err != nil {
		return nil, err
	}
	return env.Builds, nil
}

func (c *Client) DeleteBuild(ctx context.Context, buildID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/builds/"+buildID, nil)
	return err
}

func (c *Client) CarModels(ctx context.Context, search, listingType string) ([]CarModelSummary, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if listingType != "" {
		q.Set("listingType", listingType)
	}
	path := "/api/car-models"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return env.CarModels, nil
}

// Services fetches the service catalog, cached briefly since the catalog is
// read-mostly and the customizer rereads it on every render.
func (c *Client) Services(ctx context.Context) ([]CatalogService, error) {
	if cached, ok := c.services.get(); ok {
		return cached, nil
	}

	env, err := c.do(ctx, http.MethodGet, "/api/services", nil)
	if err != nil {
		return nil, err
	}

	c.services.set(env.Services)
	return env.Services, nil
}

// RefreshServices drops the cached catalog and refetches it.
func (c *Client) RefreshServices(ctx context.Context) ([]CatalogService, error) {
	c.services.invalidate()
	return c.Services(ctx)
}

// ServicePrices maps service id to price for total-cost derivation.
func (c *Client) ServicePrices(ctx context.Context) (map[string]int64, error) {
	services, err := c.Services(ctx)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]int64, len(services))
	for _, s := range services {
		prices[s.ID] = s.Price
	}
	return prices, nil
}

func (c *Client) Profile(ctx context.Context) (*UserInfo, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}
