// Package common contains shared constants and sentinel errors used across
// voicenotes components.
package common

// AuthorizationHeaderName is the HTTP header carrying the access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// AudioMediaType is the media type of every recorded audio blob.
const AudioMediaType = "audio/webm"
