package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mmahmood233/buy-01/internal/dto"
	"github.com/mmahmood233/buy-01/internal/identity"
	"github.com/mmahmood233/buy-01/internal/infrastructure/circuitbreaker"
	"github.com/mmahmood233/buy-01/pkg/httpclient"
	"github.com/rs/zerolog/log"
)

type AuthGatewayImpl struct {
	gatewayClient
	host string
}

func CreateAuthGateway(host string) AuthGateway {
	return &AuthGatewayImpl{
		gatewayClient: gatewayClient{
			// Auth calls carry no bearer; the credential is what the
			// user service is about to issue.
			cred: identity.NewStaticCredential(""),
			cb:   circuitbreaker.CreateCircuitBreaker("user-service"),
		},
		host: host,
	}
}

func (g *AuthGatewayImpl) Register(ctx context.Context, payload dto.RegisterRequest) (resp dto.AuthResponse, err error) {
	return g.post(ctx, fmt.Sprintf("%s/api/auth/register", g.host), payload, "Register")
}

func (g *AuthGatewayImpl) Login(ctx context.Context, payload dto.LoginRequest) (resp dto.AuthResponse, err error) {
	return g.post(ctx, fmt.Sprintf("%s/api/auth/login", g.host), payload, "Login")
}

func (g *AuthGatewayImpl) post(ctx context.Context, url string, payload interface{}, component string) (resp dto.AuthResponse, err error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("error marshalling auth payload: %v", err)
	}

	body, err := g.do(ctx, httpclient.HttpRequest{
		URL:    url,
		Method: http.MethodPost,
		Body:   jsonBody,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})
	if err != nil {
		log.Error().Err(err).Str("component", component).Msg("")
		return
	}

	err = json.Unmarshal(body, &resp)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("error unmarshalling auth response: %v", err)
	}

	return
}
