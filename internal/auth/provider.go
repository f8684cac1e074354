package auth

import (
	"context"

	"github.com/cmw1990/quitopia-support-sub008/internal"
)

type Provider interface {
	ValidateTokenLocal(token string) (*internal.User, error)
	ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error)
}
