package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/mmahmood233/buy-01/internal/identity"
	"github.com/mmahmood233/buy-01/pkg/errs"
	"github.com/mmahmood233/buy-01/pkg/httpclient"
	"github.com/sony/gobreaker/v2"
)

// gatewayClient is the plumbing shared by the resource gateways: it
// attaches the session credential and a request ID, routes the call
// through the circuit breaker, and translates non-2xx responses into
// typed failures with the upstream message kept intact.
type gatewayClient struct {
	cred identity.CredentialProvider
	cb   *gobreaker.CircuitBreaker[[]byte]
}

type remoteErrorBody struct {
	Message string `json:"message"`
}

func (g *gatewayClient) do(ctx context.Context, req httpclient.HttpRequest) ([]byte, error) {
	if req.Headers == nil {
		req.Headers = map[string]string{}
	}
	if token := g.cred.Token(); token != "" {
		req.Headers["Authorization"] = "Bearer " + token
	}
	req.Headers["X-Request-ID"] = uuid.New().String()

	var failure error
	body, err := g.cb.Execute(func() ([]byte, error) {
		statusCode, respBody, err := httpclient.SendRequest(ctx, req)
		if err != nil {
			return nil, err
		}

		if statusCode >= http.StatusInternalServerError {
			return nil, remoteFailure(statusCode, respBody)
		}

		// Client-side rejections must not trip the breaker.
		if statusCode >= http.StatusBadRequest {
			failure = remoteFailure(statusCode, respBody)
		}

		return respBody, nil
	})
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return nil, failure
	}

	return body, nil
}

func remoteFailure(statusCode int, body []byte) error {
	var parsed remoteErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Message == "" {
		return &errs.RemoteError{StatusCode: statusCode, Message: errs.ErrUpstream.Error()}
	}
	return &errs.RemoteError{StatusCode: statusCode, Message: parsed.Message}
}
