// Package client is the client side of the identity service API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface):
//     UpdateProfile, GetProfile, Ping and Close.
//  2. An HTTP/JSON implementation (see HTTPClient) that authenticates calls
//     with the x-auth-token header and maps transport failures onto
//     sentinel errors.
//
// # Error Handling
//
// Callers match failures with errors.Is / errors.As:
//   - ErrUnavailable: the service could not be reached, timed out or
//     answered 5xx without a reason.
//   - ErrUnauthorized: the credential was refused.
//   - ErrMalformedResponse: the body could not be decoded or lacked
//     required fields.
//   - *RejectionError: the service refused the request; Reason carries its
//     message verbatim.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All calls honour context
// cancellation; the per-request timeout is configured on the client.
package client
