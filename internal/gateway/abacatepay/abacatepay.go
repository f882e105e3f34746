// Package abacatepay is a minimal client for the AbacatePay PIX API.
// AbacatePay ships no Go SDK, so calls go through net/http directly.
package abacatepay

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

type Gateway interface {
	CreatePixCharge(userID string, amountCents int64, description string) (*PixCharge, error)
	GetChargeStatus(chargeID string) (string, error)
	VerifyWebhookSignature(payload []byte, signature string) bool
}

// PixCharge is the subset of the charge response the API needs: the
// charge id to poll and the QR code payload the client renders.
type PixCharge struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	BRCode      string `json:"brCode"`
	BRCodeB64   string `json:"brCodeBase64"`
	ExpiresAt   string `json:"expiresAt"`
	AmountCents int64  `json:"amount"`
}

type gateway struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func New(apiKey, baseURL string) Gateway {
	return &gateway{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (g *gateway) CreatePixCharge(userID string, amountCents int64, description string) (*PixCharge, error) {
	payload := map[string]interface{}{
		"amount":      amountCents,
		"expiresIn":   3600,
		"description": description,
		"metadata": map[string]string{
			"externalId": userID,
		},
	}

	body, err := g.doRequest("POST", "/pixQrCode/create", payload)
	if err != nil {
		return nil, err
	}

	var result struct {
		Data PixCharge `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode pix charge response: %w", err)
	}
	if result.Data.ID == "" {
		return nil, fmt.Errorf("pix charge response missing id")
	}

	return &result.Data, nil
}

func (g *gateway) GetChargeStatus(chargeID string) (string, error) {
	body, err := g.doRequest("GET", fmt.Sprintf("/pixQrCode/check?id=%s", chargeID), nil)
	if err != nil {
		return "", err
	}

	var result struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode charge status: %w", err)
	}

	return result.Data.Status, nil
}

// VerifyWebhookSignature checks the HMAC-SHA256 hex signature
// AbacatePay sends in the X-Webhook-Signature header, keyed by the
// account API key.
func (g *gateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.apiKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (g *gateway) doRequest(method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("abacatepay request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("abacatepay returned %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
