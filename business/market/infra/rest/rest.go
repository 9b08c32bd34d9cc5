// Package rest implements the backend REST adapters of the market context.
// One client per resource family, all over the shared instrumented HTTP
// client.
package rest

import (
	"encoding/json"
	"fmt"

	"github.com/fd1az/trade-console/internal/apperror"
	"github.com/fd1az/trade-console/internal/httpclient"
)

// envelope is the backend's response wrapper. Some endpoints wrap once
// ({data: ...}), the AI endpoints wrap twice ({data: {data: ...}}).
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// unwrap peels up to two data envelopes off a response body. Bodies without
// a wrapper pass through unchanged.
func unwrap(body []byte) json.RawMessage {
	raw := json.RawMessage(body)
	for i := 0; i < 2; i++ {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil || len(env.Data) == 0 {
			break
		}
		raw = env.Data
	}
	return raw
}

// decode unwraps a response body and unmarshals the payload into v.
func decode(body []byte, v any) error {
	if err := json.Unmarshal(unwrap(body), v); err != nil {
		return apperror.New(apperror.CodeBackendBadResponse, apperror.WithCause(err))
	}
	return nil
}

// check converts a transport error or HTTP error status into an AppError.
func check(resp *httpclient.Response, err error, op string) error {
	if err != nil {
		return apperror.Wrap(err, apperror.CodeBackendUnreachable, op)
	}
	if resp.IsError() {
		return apperror.New(apperror.CodeBackendError,
			apperror.WithStatusCode(resp.StatusCode),
			apperror.WithContext(fmt.Sprintf("%s: status %d", op, resp.StatusCode)))
	}
	return nil
}
