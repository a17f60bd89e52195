// Package tsa talks to the timestamp authority service that countersigns
// experiment records. The service takes a digest of the record's content and
// returns an RFC 3161 style token that proves the content existed at that
// time.
package tsa

import (
	"github.com/go-resty/resty/v2"
)

type TokenGetter interface {
	GetToken(digest string) ([]byte, error)
}

type Client struct {
	baseURL string
	client  *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  resty.New(),
	}
}

// GetToken requests a token for the given hex encoded digest. The response
// body is the raw token, stored as-is next to the experiment's data.
func (c *Client) GetToken(digest string) ([]byte, error) {
	req := struct {
		Digest     string `json:"digest"`
		HashedWith string `json:"hashed_with"`
	}{
		Digest:     digest,
		HashedWith: "sha256",
	}

	resp, err := c.client.R().
		SetBody(req).
		Post(c.baseURL + "/api/v1/tokens")
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		_, err := ToErrorFromResponse(resp)
		return nil, err
	}

	return resp.Body(), nil
}
