package client

import (
	"errors"

	"github.com/dmitrijs2005/thumbkeeper/internal/s3x"
)

// Provider error codes carried in common.AuthError.Code.
const (
	CodeInvalidCredentials = "invalid_credentials"
	CodeUserAlreadyExists  = "user_already_exists"
	CodeWeakPassword       = "weak_password"
)

var (
	ErrUnavailable   = errors.New("backend unavailable")
	ErrObjectExists  = s3x.ErrObjectExists
	ErrMissingBucket = s3x.ErrMissingBucket
)
