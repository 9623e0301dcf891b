// Package geocode resolves free text addresses into coordinates through the
// Kakao local search API.
package geocode

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultKakaoBaseURL = "https://dapi.kakao.com"
	addressSearchPath   = "/v2/local/search/address.json"
)

// Candidate is one match of an address search. X is the longitude and Y the
// latitude, both as decimal strings.
type Candidate struct {
	AddressName string `json:"address_name"`
	X           string `json:"x"`
	Y           string `json:"y"`
}

type Geocoder interface {
	Lookup(ctx context.Context, address string) ([]Candidate, error)
}

type addressSearchResponse struct {
	Documents []Candidate `json:"documents"`
}

type KakaoOptions struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type KakaoClient struct {
	httpClient *resty.Client
}

var _ Geocoder = (*KakaoClient)(nil)

func NewKakaoClient(opts KakaoOptions) *KakaoClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultKakaoBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	// No retries: a failed lookup fails the write.
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Authorization", "KakaoAK "+opts.APIKey).
		SetHeader("Accept", "application/json")

	return &KakaoClient{httpClient: client}
}

func (c *KakaoClient) Lookup(ctx context.Context, address string) (candidates []Candidate, err error) {
	var result addressSearchResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("query", address).
		SetResult(&result).
		Get(addressSearchPath)
	if err != nil {
		err = fmt.Errorf("kakao address search: %w", err)
		return
	}

	if resp.IsError() {
		err = fmt.Errorf("kakao address search: unexpected status %d", resp.StatusCode())
		return
	}

	candidates = result.Documents
	return
}
