// Package common contains shared constants and sentinel errors used across
// ThumbKeeper components.
package common

// AuthorizationHeaderName is the HTTP header used to carry the session
// access token on outbound requests to the generation endpoint.
const AuthorizationHeaderName = "Authorization"

// AvatarMaxSize is the largest avatar image accepted for upload (5 MiB).
const AvatarMaxSize = 5 * 1024 * 1024

// MinPasswordLength is the shortest password accepted by client-side validation.
const MinPasswordLength = 6
