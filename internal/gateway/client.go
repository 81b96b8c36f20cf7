// Package gateway provides HTTP adapters for the directory, cloud, and
// remediation ports against the identity-gateway REST API that fronts both
// identity sources. The sweep engine only sees the port interfaces; all
// transport detail stays here.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"privsweep/internal/sweep/models"
	"privsweep/internal/sweep/ports"
	dErrors "privsweep/pkg/domain-errors"
)

// Client calls the identity-gateway API. It implements the DirectoryClient,
// CloudClient, and Remediator ports.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

func New(baseURL, token string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "gateway base URL is required")
	}
	c := &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type directoryUserResponse struct {
	SAMAccountName     string     `json:"sam_account_name"`
	PrincipalName      string     `json:"principal_name"`
	Email              string     `json:"email"`
	Enabled            bool       `json:"enabled"`
	LastLogon          *time.Time `json:"last_logon"`
	CreatedAt          *time.Time `json:"created_at"`
	ExtensionAttribute string     `json:"extension_attribute"`
}

type cloudUserResponse struct {
	ObjectID             string     `json:"object_id"`
	PrincipalName        string     `json:"principal_name"`
	Enabled              bool       `json:"enabled"`
	InteractiveSignIn    *time.Time `json:"interactive_sign_in"`
	NonInteractiveSignIn *time.Time `json:"non_interactive_sign_in"`
	CreatedAt            *time.Time `json:"created_at"`
}

type sponsorResponse struct {
	Mail          string `json:"mail"`
	PrincipalName string `json:"principal_name"`
}

// GetUser resolves an on-premises directory account.
func (c *Client) GetUser(ctx context.Context, samAccountName string) (*ports.DirectoryUser, error) {
	var resp directoryUserResponse
	err := c.get(ctx, "/v1/directory/users/"+url.PathEscape(samAccountName), &resp)
	if err != nil {
		return nil, err
	}
	return &ports.DirectoryUser{
		SAMAccountName:     resp.SAMAccountName,
		PrincipalName:      resp.PrincipalName,
		Email:              resp.Email,
		Enabled:            resp.Enabled,
		LastLogon:          resp.LastLogon,
		CreatedAt:          resp.CreatedAt,
		ExtensionAttribute: resp.ExtensionAttribute,
	}, nil
}

// CloudDirectory returns a view of the same client that satisfies the
// CloudClient port, keeping the two lookup paths distinct at wiring time.
func (c *Client) CloudDirectory() ports.CloudClient {
	return cloudView{c}
}

type cloudView struct {
	client *Client
}

func (v cloudView) GetUser(ctx context.Context, objectID string) (*ports.CloudUser, error) {
	var resp cloudUserResponse
	err := v.client.get(ctx, "/v1/cloud/users/"+url.PathEscape(objectID), &resp)
	if err != nil {
		return nil, err
	}
	return &ports.CloudUser{
		ObjectID:             resp.ObjectID,
		PrincipalName:        resp.PrincipalName,
		Enabled:              resp.Enabled,
		InteractiveSignIn:    resp.InteractiveSignIn,
		NonInteractiveSignIn: resp.NonInteractiveSignIn,
		CreatedAt:            resp.CreatedAt,
	}, nil
}

func (v cloudView) GetSponsors(ctx context.Context, objectID string) ([]ports.Sponsor, error) {
	var resp []sponsorResponse
	err := v.client.get(ctx, "/v1/cloud/users/"+url.PathEscape(objectID)+"/sponsors", &resp)
	if err != nil {
		return nil, err
	}
	sponsors := make([]ports.Sponsor, 0, len(resp))
	for _, s := range resp {
		sponsors = append(sponsors, ports.Sponsor{Mail: s.Mail, PrincipalName: s.PrincipalName})
	}
	return sponsors, nil
}

// Disable disables an account through whichever source owns it.
func (c *Client) Disable(ctx context.Context, account models.AccountRecord) error {
	return c.post(ctx, "/v1/remediation/disable", remediationRequest(account))
}

// Delete removes an account. The gateway surfaces "not supported for this
// source" as a regular error response, which propagates as a failure here.
func (c *Client) Delete(ctx context.Context, account models.AccountRecord) error {
	return c.post(ctx, "/v1/remediation/delete", remediationRequest(account))
}

func remediationRequest(account models.AccountRecord) map[string]string {
	return map[string]string{
		"principal_name":   account.PrincipalName,
		"sam_account_name": account.SAMAccountName,
		"cloud_object_id":  account.CloudObjectID,
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build gateway request")
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode gateway request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build gateway request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "call identity gateway")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return dErrors.New(dErrors.CodeNotFound, req.URL.Path+" not found")
	case resp.StatusCode >= 400:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return dErrors.New(dErrors.CodeUnavailable,
			fmt.Sprintf("identity gateway returned %d: %s", resp.StatusCode, detail))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "decode gateway response")
	}
	return nil
}
