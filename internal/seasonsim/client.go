package seasonsim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/leduyquang2003/badminton-team-selector/internal/app"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/partition"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/rating"
)

// client is a thin JSON client over the service API.
type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *client) checkHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("service unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (c *client) createPlayer(ctx context.Context, name, tier string) (model.Player, error) {
	var p model.Player
	err := c.post(ctx, "/players", map[string]string{"name": name, "tier": tier}, http.StatusCreated, &p)
	return p, err
}

func (c *client) selectCandidates(ctx context.Context, count int) ([]model.Player, error) {
	var players []model.Player
	err := c.post(ctx, "/selection", map[string]int{"count": count}, http.StatusOK, &players)
	return players, err
}

func (c *client) partitionTeams(ctx context.Context, ids []string) (partition.Pairing, error) {
	var pairing partition.Pairing
	err := c.post(ctx, "/teams", map[string][]string{"player_ids": ids}, http.StatusOK, &pairing)
	return pairing, err
}

func (c *client) recordMatch(ctx context.Context, body map[string]any) (rating.Result, error) {
	var res rating.Result
	err := c.post(ctx, "/matches", body, http.StatusOK, &res)
	return res, err
}

func (c *client) leaderboard(ctx context.Context, limit int) ([]app.Entry, error) {
	var entries []app.Entry
	err := c.get(ctx, fmt.Sprintf("/leaderboard?limit=%d", limit), &entries)
	return entries, err
}

func (c *client) listPlayers(ctx context.Context) ([]model.Player, error) {
	var players []model.Player
	err := c.get(ctx, "/players", &players)
	return players, err
}

func (c *client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) post(ctx context.Context, path string, body any, wantStatus int, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("POST %s returned %d: %s", path, resp.StatusCode, msg)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
