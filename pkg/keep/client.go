package keep

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAuthURL = "https://android.clients.google.com/auth"
	defaultAPIURL  = "https://www.googleapis.com/notes/v1"
)

// AuthError marks a failed credential exchange so callers can tell it apart
// from ordinary network or sync failures.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("google keep authentication failed: %s", e.Reason)
}

// apiClient speaks the Keep wire protocol: a master-token exchange for an
// OAuth access token, then a single "changes" endpoint that both uploads
// local mutations and downloads the remote state.
type apiClient struct {
	authURL    string
	apiURL     string
	httpClient *http.Client
	authToken  string
}

func newAPIClient(baseURL string) *apiClient {
	c := &apiClient{
		authURL:    defaultAuthURL,
		apiURL:     defaultAPIURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	if baseURL != "" {
		c.authURL = baseURL + "/auth"
		c.apiURL = baseURL + "/notes/v1"
	}
	return c
}

// authenticate exchanges the account master token for a scoped access token.
// The response is the classic key=value line format of the Android auth
// endpoint.
func (c *apiClient) authenticate(ctx context.Context, email, masterToken string) error {
	form := url.Values{}
	form.Set("accountType", "HOSTED_OR_GOOGLE")
	form.Set("Email", email)
	form.Set("Token", masterToken)
	form.Set("service", "oauth2:https://www.googleapis.com/auth/memento")
	form.Set("app", "com.google.android.keep")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &AuthError{Reason: fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))}
	}

	for _, line := range strings.Split(string(bodyBytes), "\n") {
		if value, found := strings.CutPrefix(line, "Auth="); found {
			c.authToken = strings.TrimSpace(value)
			return nil
		}
	}
	return &AuthError{Reason: "no Auth token in response"}
}

type nodeLabelRef struct {
	LabelId string `json:"labelId"`
}

type nodeTimestamps struct {
	Created string `json:"created,omitempty"`
	Updated string `json:"updated,omitempty"`
	Trashed string `json:"trashed,omitempty"`
}

// wireNode is the flat node record exchanged with the changes endpoint.
type wireNode struct {
	Id         string         `json:"id"`
	Kind       string         `json:"kind"`
	Type       string         `json:"type"`
	ParentId   string         `json:"parentId"`
	Title      string         `json:"title,omitempty"`
	Text       string         `json:"text,omitempty"`
	Color      string         `json:"color,omitempty"`
	IsPinned   bool           `json:"isPinned"`
	IsArchived bool           `json:"isArchived"`
	Timestamps nodeTimestamps `json:"timestamps"`
	LabelIds   []nodeLabelRef `json:"labelIds,omitempty"`
}

type wireLabel struct {
	MainId string `json:"mainId"`
	Name   string `json:"name"`
}

type changesRequest struct {
	ClientTimestamp string      `json:"clientTimestamp"`
	TargetVersion   string      `json:"targetVersion,omitempty"`
	Nodes           []wireNode  `json:"nodes"`
	Labels          []wireLabel `json:"userInfo,omitempty"`
}

type changesResponse struct {
	ToVersion string     `json:"toVersion"`
	Truncated bool       `json:"truncated"`
	Nodes     []wireNode `json:"nodes"`
	UserInfo  struct {
		Labels []wireLabel `json:"labels"`
	} `json:"userInfo"`
}

// changes uploads dirty nodes and labels and returns the remote state at the
// resulting version.
func (c *apiClient) changes(ctx context.Context, targetVersion string, nodes []wireNode, labels []wireLabel) (*changesResponse, error) {
	body := changesRequest{
		ClientTimestamp: time.Now().UTC().Format(time.RFC3339),
		TargetVersion:   targetVersion,
		Nodes:           nodes,
		Labels:          labels,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/changes", c.apiURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "OAuth "+c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("changes request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &AuthError{Reason: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("keep changes error: status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var changesResp changesResponse
	if err := json.Unmarshal(bodyBytes, &changesResp); err != nil {
		return nil, err
	}
	return &changesResp, nil
}
