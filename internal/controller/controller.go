package controller

import (
	"io"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/mmahmood233/buy-01/internal/console"
	"github.com/mmahmood233/buy-01/internal/domain"
	"github.com/mmahmood233/buy-01/internal/dto"
	"github.com/mmahmood233/buy-01/internal/gateway"
	appmiddleware "github.com/mmahmood233/buy-01/internal/middleware"
	"github.com/mmahmood233/buy-01/pkg/errs"
	"github.com/mmahmood233/buy-01/pkg/response"
)

type Controller struct {
	registry      *console.Registry
	authGateway   gateway.AuthGateway
	publicCatalog gateway.ProductGateway
}

func CreateController(e *echo.Group, registry *console.Registry, authGateway gateway.AuthGateway, publicCatalog gateway.ProductGateway, jwtSecret string) {
	ct := Controller{
		registry:      registry,
		authGateway:   authGateway,
		publicCatalog: publicCatalog,
	}

	e.POST("/auth/register", ct.Register)
	e.POST("/auth/login", ct.Login)
	e.GET("/products", ct.GetProducts)

	seller := e.Group("/seller", appmiddleware.JWTAuth(jwtSecret), appmiddleware.RequireSeller)
	seller.GET("/dashboard", ct.GetDashboard)
	seller.POST("/products/load", ct.LoadProducts)
	seller.POST("/products/editor", ct.OpenEditor)
	seller.POST("/products", ct.SubmitProductForm)
	seller.DELETE("/products/:id", ct.DeleteProduct)
	seller.POST("/products/:id/media", ct.OpenMediaManager)
	seller.DELETE("/media-manager", ct.CloseMediaManager)
	seller.POST("/media", ct.UploadMedia)
	seller.DELETE("/media/:id", ct.DeleteMedia)
}

func (ct *Controller) Register(e echo.Context) error {
	payload := dto.RegisterRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Register").Msg("")
	}

	resp, err := ct.authGateway.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (ct *Controller) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
	}

	resp, err := ct.authGateway.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (ct *Controller) GetProducts(e echo.Context) error {
	products, err := ct.publicCatalog.GetAllProducts(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", products)
}

func (ct *Controller) GetDashboard(e echo.Context) error {
	c, err := ct.console(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", c.Snapshot())
}

func (ct *Controller) LoadProducts(e echo.Context) error {
	c, err := ct.console(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err := c.LoadOwnedProducts(e.Request().Context()); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", c.Snapshot())
}

// OpenEditor opens the product editor: create mode without a product
// ID, edit mode with one.
func (ct *Controller) OpenEditor(e echo.Context) error {
	c, err := ct.console(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	productID := e.QueryParam("productId")
	if productID == "" {
		c.OpenCreateForm()
	} else if err := c.OpenEditForm(productID); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", c.Snapshot())
}

func (ct *Controller) SubmitProductForm(e echo.Context) error {
	c, err := ct.console(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	fields := dto.ProductFormState{}
	if err := e.Bind(&fields); err != nil {
		log.Error().Err(err).Str("component", "SubmitProductForm").Msg("")
	}

	fieldErrors, err := c.SubmitProductForm(e.Request().Context(), fields)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	if len(fieldErrors) > 0 {
		return response.WriteErrorResponse(e, errs.ErrClient, fieldErrors)
	}

	return response.WriteSuccessResponse(e, "", c.Snapshot())
}

func (ct *Controller) DeleteProduct(e echo.Context) error {
	c, err := ct.console(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	ctx := console.WithDecision(e.Request().Context(), e.QueryParam("confirm") == "true")
	if err := c.DeleteProduct(ctx, e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", c.Snapshot())
}

func (ct *Controller) OpenMediaManager(e echo.Context) error {
	c, err := ct.console(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err := c.OpenMediaManager(e.Request().Context(), e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, c.Snapshot())
	}

	return response.WriteSuccessResponse(e, "", c.Snapshot())
}

func (ct *Controller) CloseMediaManager(e echo.Context) error {
	c, err := ct.console(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err := c.CloseMediaManager(e.Request().Context()); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", c.Snapshot())
}

func (ct *Controller) UploadMedia(e echo.Context) error {
	c, err := ct.console(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	fileHeader, err := e.FormFile("file")
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrInternalServer, nil)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrInternalServer, nil)
	}

	file := dto.MediaFile{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     content,
	}

	if err := c.UploadMedia(e.Request().Context(), file); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", c.Snapshot())
}

func (ct *Controller) DeleteMedia(e echo.Context) error {
	c, err := ct.console(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	ctx := console.WithDecision(e.Request().Context(), e.QueryParam("confirm") == "true")
	if err := c.DeleteMedia(ctx, e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", c.Snapshot())
}

func (ct *Controller) console(e echo.Context) (console.CatalogConsole, error) {
	principal, ok := e.Get(appmiddleware.PrincipalContextKey).(domain.Principal)
	if !ok {
		return nil, errs.ErrNotLoggedIn
	}

	token, _ := e.Get(appmiddleware.TokenContextKey).(string)

	return ct.registry.Acquire(principal, token)
}
