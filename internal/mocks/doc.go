// Package mocks provides shared mock implementations for tests.
//
// Each mock has a function field per interface method and falls back to
// fixed return values when the field is nil:
//
//	svc := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return &auth.Claims{Subject: "ops"}, nil
//	    },
//	}
package mocks
