package commerce

import (
	"context"
	"net/http"

	"github.com/mkravets/storefront-service/internal/application/ports"
	"github.com/mkravets/storefront-service/internal/domain/session"
)

type authData struct {
	Marker string `json:"marker"`
	Value  string `json:"value"`
}

type signUpRequest struct {
	FormIdentifier string     `json:"formIdentifier"`
	AuthData       []authData `json:"authData"`
}

func (c *Client) SignUp(ctx context.Context, data ports.SignUpData) error {
	req := signUpRequest{
		FormIdentifier: "sign_up",
		AuthData: []authData{
			{Marker: "email", Value: data.Email},
			{Marker: "password", Value: data.Password},
			{Marker: "name", Value: data.Name},
		},
	}

	return c.do(ctx, http.MethodPost, "/auth/sign-up", "", req, nil)
}

type signInRequest struct {
	AuthData []authData `json:"authData"`
}

type signInResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (session.Credential, error) {
	req := signInRequest{
		AuthData: []authData{
			{Marker: "email", Value: email},
			{Marker: "password", Value: password},
		},
	}

	var resp signInResponse
	if err := c.do(ctx, http.MethodPost, "/auth/sign-in", "", req, &resp); err != nil {
		return session.Credential{}, err
	}

	return session.Credential{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (c *Client) Logout(ctx context.Context, cred session.Credential) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", cred.AccessToken, logoutRequest{RefreshToken: cred.RefreshToken}, nil)
}

type formResponse struct {
	Attributes []ports.FormAttribute `json:"attributes"`
}

func (c *Client) GetFormAttributes(ctx context.Context, marker string) ([]ports.FormAttribute, error) {
	var resp formResponse
	if err := c.do(ctx, http.MethodGet, "/forms/"+marker, "", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Attributes, nil
}
