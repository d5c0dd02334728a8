package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
)

// IdentityClient wraps the remote identity service. Sign-in and sign-up
// return the bearer token every other call rides on.
type IdentityClient interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	RecoveryQuestion(ctx context.Context, username string) (*models.RecoveryQuestionResponse, error)
	RecoveryAnswer(ctx context.Context, req *models.RecoveryAnswerRequest) (*models.AuthResponse, error)
}

type identityClient struct {
	*client
}

func NewIdentityClient(baseURL string, timeout time.Duration) IdentityClient {
	return &identityClient{client: newClient(baseURL, "identity", timeout)}
}

// The identity service capitalizes its field names.
type identityAuthWire struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Usuario struct {
		Nombre string `json:"Nombre"`
	} `json:"usuario"`
}

func (w *identityAuthWire) toModel() *models.AuthResponse {
	return &models.AuthResponse{
		Success:  true,
		Token:    w.Token,
		Username: w.Usuario.Nombre,
		Message:  w.Message,
	}
}

func (c *identityClient) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	payload := map[string]string{
		"Nombre":     req.Username,
		"Contraseña": req.Password,
	}

	var wire identityAuthWire
	if err := c.doJSON(ctx, http.MethodPost, "/login", payload, &wire); err != nil {
		return nil, err
	}

	return wire.toModel(), nil
}

func (c *identityClient) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	payload := map[string]string{
		"Nombre":     req.Username,
		"Contraseña": req.Password,
		"Pregunta":   req.Question,
		"Respuesta":  req.Answer,
	}

	var wire identityAuthWire
	if err := c.doJSON(ctx, http.MethodPost, "/registrar", payload, &wire); err != nil {
		return nil, err
	}

	return wire.toModel(), nil
}

func (c *identityClient) RecoveryQuestion(ctx context.Context, username string) (*models.RecoveryQuestionResponse, error) {
	payload := map[string]string{"Nombre": username}

	var wire struct {
		Pregunta string `json:"pregunta"`
	}

	if err := c.doJSON(ctx, http.MethodPost, "/recuperar-pregunta", payload, &wire); err != nil {
		return nil, err
	}

	return &models.RecoveryQuestionResponse{Question: wire.Pregunta}, nil
}

func (c *identityClient) RecoveryAnswer(ctx context.Context, req *models.RecoveryAnswerRequest) (*models.AuthResponse, error) {
	payload := map[string]string{
		"Nombre":    req.Username,
		"respuesta": req.Answer,
	}

	var wire identityAuthWire
	if err := c.doJSON(ctx, http.MethodPost, "/recuperar-respuesta", payload, &wire); err != nil {
		return nil, err
	}

	return wire.toModel(), nil
}
