package sentinel

import "errors"

// Sentinel errors for infrastructure facts. The identity provider, storage,
// and transport layers return these (optionally wrapped) so the session and
// gateway layers can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entry does not exist in storage or cache
// - ErrNoAccount: identity provider knows no account on this profile
// - ErrExpired: credential past its decoded expiry
// - ErrInteractionInProgress: a provider login/logout flow is already running
// - ErrUnavailable: provider or backend temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	ErrNotFound              = errors.New("not found")
	ErrNoAccount             = errors.New("no account")
	ErrExpired               = errors.New("expired")
	ErrInteractionInProgress = errors.New("interaction in progress")
	ErrUnavailable           = errors.New("unavailable")
)
