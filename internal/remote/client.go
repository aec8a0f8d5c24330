package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client is the HTTP implementation of Gateway.
type Client struct {
	baseURL  string
	token    string
	imageDir string
	http     *http.Client
}

func NewClient(baseURL, token, imageDir string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		imageDir: imageDir,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) UpsertWallet(ctx context.Context, w *Wallet, userID string) (*Wallet, error) {
	var out Wallet
	endpoint := fmt.Sprintf("%s/v1/users/%s/wallets/%s", c.baseURL, url.PathEscape(userID), url.PathEscape(w.ID))
	if err := c.do(ctx, http.MethodPut, endpoint, w, &out); err != nil {
		return nil, fmt.Errorf("error upserting wallet %s: %w", w.ID, err)
	}
	return &out, nil
}

func (c *Client) UpsertTransaction(ctx context.Context, t *Transaction, userID string) (*Transaction, error) {
	var out Transaction
	endpoint := fmt.Sprintf("%s/v1/users/%s/transactions/%s", c.baseURL, url.PathEscape(userID), url.PathEscape(t.ID))
	if err := c.do(ctx, http.MethodPut, endpoint, t, &out); err != nil {
		return nil, fmt.Errorf("error upserting transaction %s: %w", t.ID, err)
	}
	return &out, nil
}

func (c *Client) ListWallets(ctx context.Context, userID string) ([]*Wallet, error) {
	var out struct {
		Wallets []*Wallet `json:"wallets"`
	}
	endpoint := fmt.Sprintf("%s/v1/users/%s/wallets", c.baseURL, url.PathEscape(userID))
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, fmt.Errorf("error listing wallets: %w", err)
	}
	return out.Wallets, nil
}

func (c *Client) ListTransactions(ctx context.Context, userID string) ([]*Transaction, error) {
	var out struct {
		Transactions []*Transaction `json:"transactions"`
	}
	endpoint := fmt.Sprintf("%s/v1/users/%s/transactions", c.baseURL, url.PathEscape(userID))
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	return out.Transactions, nil
}

// FetchImage downloads an image into the local cache directory and returns
// the saved file's path.
func (c *Client) FetchImage(ctx context.Context, remoteURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("error downloading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(c.imageDir, 0755); err != nil {
		return "", fmt.Errorf("error creating image directory: %w", err)
	}

	ext := path.Ext(remoteURL)
	if ext == "" || len(ext) > 5 {
		ext = ".img"
	}
	dest := filepath.Join(c.imageDir, uuid.NewString()+ext)

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("error creating image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("error writing image file: %w", err)
	}

	return dest, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/v1/health", nil, nil); err != nil {
		return fmt.Errorf("error pinging remote: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("error marshaling request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("remote returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}
