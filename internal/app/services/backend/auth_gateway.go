package backend

import (
	"context"
	"errors"
	"medicalcv-service/internal/app/contracts"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/dto/responses"
	"medicalcv-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type authGateway struct {
	client *Client
}

func NewAuthGateway(client *Client) contracts.AuthGateway {
	return &authGateway{client: client}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn maps every failure onto one of the three auth error kinds: the
// backend refused the credentials, answered with something unusable, or
// could not be reached.
func (g *authGateway) SignIn(ctx context.Context, email, password string) (*responses.SignIn, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	g.client.Log.Info("authGateway.SignIn called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	envelope, status, err := send[responses.SignIn](ctx, g.client, call{
		method: constvars.MethodPost,
		path:   constvars.BackendPathSignIn,
		body:   signInRequest{Email: email, Password: password},
	})
	if err != nil {
		switch {
		case status == 0:
			return nil, exceptions.ErrAuthTransport(err)
		case status >= 400 && status < 500:
			return nil, exceptions.ErrAuthInvalidCredentials(err)
		case status >= 500:
			return nil, exceptions.ErrAuthTransport(err)
		case errors.Is(err, errUnsuccessfulEnvelope):
			return nil, exceptions.ErrAuthInvalidCredentials(err)
		default:
			return nil, exceptions.ErrAuthMalformedResponse(err)
		}
	}

	data := envelope.Data
	if data.Token == "" || data.User == nil || data.User.ID == "" || !data.User.Role.IsValid() {
		return nil, exceptions.ErrAuthMalformedResponse(errors.New("sign-in response lacks token or identity"))
	}
	return &data, nil
}

func (g *authGateway) SignOut(ctx context.Context, token string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	g.client.Log.Info("authGateway.SignOut called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	_, _, err := send[struct{}](ctx, g.client, call{
		method: constvars.MethodPost,
		path:   constvars.BackendPathSignOut,
		token:  token,
	})
	return err
}
