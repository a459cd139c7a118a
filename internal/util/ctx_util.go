package util

import (
	"context"

	"github.com/RoyceAzure/lab/pos/internal/constants"
	"github.com/RoyceAzure/lab/pos/internal/token"
)

// GetTokenPayloadFromContext 從請求上下文中取出token payload
// middleware未設置時回傳nil
func GetTokenPayloadFromContext(ctx context.Context) *token.Payload {
	var tokenPayload *token.Payload

	if v := ctx.Value(constants.AuthorizationPayloadKey); v != nil {
		tokenPayload = v.(*token.Payload)
	}

	return tokenPayload
}
