package gateway

import (
	"context"
	"encoding/json"

	"eventually/internal/logging"
	"eventually/internal/profile"
	"eventually/internal/recommend"
)

// Fixed backend paths. These share the API prefix so they are rewritten onto
// the configured origin.
const (
	pathInitSession     = "/api/init-session"
	pathUserInfo        = "/api/user-info"
	pathRecommendations = "/api/shopping-recommendations"
	pathCleanupSession  = "/api/cleanup-session"
	pathExportData      = "/api/export-data/"
)

// sessionHeader carries the session id alongside the body on profile calls.
const sessionHeader = "X-Session-Id"

// InitSession announces a newly generated session id to the backend.
func (c *Client) InitSession(ctx context.Context, sessionID string) error {
	_, err := c.Send(ctx, "POST", pathInitSession, map[string]string{
		"session_id": sessionID,
	}, nil)
	return err
}

type profileSubmission struct {
	profile.Profile
	SessionID string `json:"session_id"`
}

type profileResponse struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
}

// SubmitProfile persists the profile server-side under the given session id.
// The returned id is the server's canonical session id, or "" when the server
// did not issue one; the caller decides how to recover in that case.
func (c *Client) SubmitProfile(ctx context.Context, p profile.Profile, sessionID string) (string, error) {
	raw, err := c.Send(ctx, "POST", pathUserInfo, profileSubmission{
		Profile:   p,
		SessionID: sessionID,
	}, map[string]string{
		sessionHeader: sessionID,
	})
	if err != nil {
		return "", err
	}

	var resp profileResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		logging.GatewayError("user-info response not parseable: %v", err)
		return "", nil
	}
	if resp.Status != "success" {
		return "", nil
	}
	return resp.SessionID, nil
}

type recommendationRequest struct {
	SessionID     string          `json:"session_id"`
	ShoppingInput recommend.Query `json:"shopping_input"`
}

// Recommendations requests product recommendations for the query.
func (c *Client) Recommendations(ctx context.Context, sessionID string, q recommend.Query) (recommend.Result, error) {
	raw, err := c.Send(ctx, "POST", pathRecommendations, recommendationRequest{
		SessionID:     sessionID,
		ShoppingInput: q,
	}, nil)
	if err != nil {
		return recommend.Result{}, err
	}
	return recommend.Decode(raw)
}

// CleanupSession asks the backend to drop server-side session state. Callers
// treat this as best-effort on shutdown; the durable local slot stays.
func (c *Client) CleanupSession(ctx context.Context, sessionID string) error {
	_, err := c.Send(ctx, "POST", pathCleanupSession, map[string]string{
		"session_id": sessionID,
	}, nil)
	return err
}

// ExportData fetches the server-side copy of the profile for a session.
func (c *Client) ExportData(ctx context.Context, sessionID string) (json.RawMessage, error) {
	return c.Send(ctx, "GET", pathExportData+sessionID, nil, nil)
}
