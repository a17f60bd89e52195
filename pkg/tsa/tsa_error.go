package tsa

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

var ErrTSAAPI = errors.New("tsa api")

// ErrorResponse describes the JSON the timestamp authority responds with
// when a token request fails.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

func ToErrorFromResponse(resp *resty.Response) (*ErrorResponse, error) {
	var errorResponse ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errorResponse); err != nil {
		return nil, errors.Join(ErrTSAAPI, fmt.Errorf("(HTTP Status: %d)- unable to parse json error response: %s", resp.RawResponse.StatusCode, err))
	}

	return &errorResponse, errors.Join(ErrTSAAPI, fmt.Errorf("(HTTP Status: %d)- %s: %s", resp.RawResponse.StatusCode, errorResponse.Code, errorResponse.Message))
}
