package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/textsense/textsense-client/internal/models"
)

// Client calls the moderation backend's /moderate endpoint. Callers must
// pass text that is non-empty after trimming; the gate does not re-validate.
type Client struct {
	client  *resty.Client
	baseURL string
}

// Ensure Client implements GateInterface
var _ GateInterface = (*Client)(nil)

type moderateRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type moderateResponse struct {
	Action      string  `json:"action"`
	Reason      string  `json:"reason"`
	Score       float64 `json:"score"`
	MatchedSeed string  `json:"matched_seed"`
}

// NewClient creates a new moderation gate client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", "TextSense-Client/1.0"),
		baseURL: baseURL,
	}
}

// Submit sends one submission to the backend and returns its verdict. Every
// failure path (unreachable backend, non-200 status, malformed body,
// unrecognized action) degrades to a review verdict so downstream logic has
// a single success-shaped contract. Exactly one attempt per call; no retries.
func (c *Client) Submit(ctx context.Context, text string, surface models.Surface) models.Verdict {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(moderateRequest{Text: text, Mode: string(surface)}).
		Post(c.baseURL + "/moderate")

	if err != nil {
		logrus.Warnf("Moderation request failed: %v", err)
		return reviewFallback(fmt.Sprintf("moderation request failed: %v", err))
	}

	if resp.StatusCode() != 200 {
		logrus.Warnf("Moderation backend returned status %d: %s", resp.StatusCode(), string(resp.Body()))
		return reviewFallback(fmt.Sprintf("moderation backend returned status %d", resp.StatusCode()))
	}

	var result moderateResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		logrus.Warnf("Failed to parse moderation response: %v", err)
		return reviewFallback("malformed moderation response")
	}

	action := models.ParseAction(result.Action)
	if string(action) != result.Action {
		logrus.Warnf("Unrecognized moderation action %q, treating as review", result.Action)
	}

	return models.Verdict{
		Action:      action,
		Reason:      result.Reason,
		Score:       result.Score,
		MatchedSeed: result.MatchedSeed,
	}
}

// reviewFallback synthesizes the verdict used for every transport-level
// failure, mirroring the backend's own fail-toward-caution policy.
func reviewFallback(reason string) models.Verdict {
	return models.Verdict{
		Action: models.ActionReview,
		Reason: reason,
	}
}
