//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package tagger talks to the remote morphological tagger.
package tagger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/e-gun/AyracGoServer/internal/str"
)

const (
	MAXRESPONSEBYTES = 4 << 20
)

var (
	// ErrTaggingUnavailable - the tagger could not be reached or did not answer usefully
	ErrTaggingUnavailable = errors.New("tagging unavailable")
	// ErrBadResponse - the tagger answered with something that is not a token list
	ErrBadResponse = fmt.Errorf("%w: malformed response", ErrTaggingUnavailable)
)

type Request struct {
	Sentence string `json:"sentence"`
}

// Response - the body exactly as received (for caching) and the tokens read from it
type Response struct {
	Raw    []byte
	Tokens []str.TaggedToken
}

type Client struct {
	URL     string
	HTTP    *http.Client
	Timeout time.Duration
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		URL:     url,
		HTTP:    &http.Client{},
		Timeout: timeout,
	}
}

// Tag - POST {"sentence": s} to the tagger and read back the ordered token list
func (c *Client) Tag(ctx context.Context, sentence string) (Response, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	payload, err := json.Marshal(Request{Sentence: sentence})
	if err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrTaggingUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}

	resp, err := hc.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrTaggingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MAXRESPONSEBYTES))
		return Response{}, fmt.Errorf("%w: HTTP status %d", ErrTaggingUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MAXRESPONSEBYTES))
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrTaggingUnavailable, err)
	}

	tokens, err := Parse(body)
	if err != nil {
		return Response{}, err
	}
	return Response{Raw: body, Tokens: tokens}, nil
}

// Parse - validate and decode a tagger body; also used for bodies that come out of the cache
func Parse(body []byte) ([]str.TaggedToken, error) {
	if err := Validate(body); err != nil {
		return nil, err
	}
	return Decode(body)
}
