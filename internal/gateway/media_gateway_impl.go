package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/mmahmood233/buy-01/internal/domain"
	"github.com/mmahmood233/buy-01/internal/dto"
	"github.com/mmahmood233/buy-01/internal/identity"
	"github.com/mmahmood233/buy-01/internal/infrastructure/circuitbreaker"
	"github.com/mmahmood233/buy-01/pkg/httpclient"
	"github.com/rs/zerolog/log"
)

type MediaGatewayImpl struct {
	gatewayClient
	host string
}

func CreateMediaGateway(host string, cred identity.CredentialProvider) MediaGateway {
	return &MediaGatewayImpl{
		gatewayClient: gatewayClient{
			cred: cred,
			cb:   circuitbreaker.CreateCircuitBreaker("media-service"),
		},
		host: host,
	}
}

func (g *MediaGatewayImpl) GetMediaByProductID(ctx context.Context, productID string) (media []domain.Media, err error) {
	body, err := g.do(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/api/media/product/%s", g.host, productID),
		Method: http.MethodGet,
	})
	if err != nil {
		log.Error().Err(err).Str("component", "GetMediaByProductID").Msg("")
		return
	}

	err = json.Unmarshal(body, &media)
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling media list response: %v", err)
	}

	return
}

func (g *MediaGatewayImpl) UploadMedia(ctx context.Context, file dto.MediaFile, productID string) (media domain.Media, err error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, file.FileName))
	header.Set("Content-Type", file.ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return domain.Media{}, fmt.Errorf("error building multipart body: %v", err)
	}
	if _, err = part.Write(file.Content); err != nil {
		return domain.Media{}, fmt.Errorf("error building multipart body: %v", err)
	}

	if err = writer.WriteField("productId", productID); err != nil {
		return domain.Media{}, fmt.Errorf("error building multipart body: %v", err)
	}

	if err = writer.Close(); err != nil {
		return domain.Media{}, fmt.Errorf("error building multipart body: %v", err)
	}

	body, err := g.do(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/api/media/upload", g.host),
		Method: http.MethodPost,
		Body:   buf.Bytes(),
		Headers: map[string]string{
			"Content-Type": writer.FormDataContentType(),
		},
	})
	if err != nil {
		log.Error().Err(err).Str("component", "UploadMedia").Msg("")
		return
	}

	err = json.Unmarshal(body, &media)
	if err != nil {
		return domain.Media{}, fmt.Errorf("error unmarshalling media response: %v", err)
	}

	return
}

func (g *MediaGatewayImpl) DeleteMedia(ctx context.Context, id string) (err error) {
	_, err = g.do(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/api/media/%s", g.host, id),
		Method: http.MethodDelete,
	})
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteMedia").Msg("")
	}

	return
}
