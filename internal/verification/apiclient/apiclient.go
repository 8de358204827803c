// Package apiclient invokes the identity verification service's GraphQL
// operations. It owns request building, classification of every failure into a
// client error, and the check that each response carries its payload.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"secureid/internal/platform/graphql"
	"secureid/internal/verification/models"
	"secureid/internal/verification/transformers"
	"secureid/internal/verification/wire"
	dErrors "secureid/pkg/domain-errors"
)

// Transport is the GraphQL client the api client runs on.
type Transport interface {
	Query(ctx context.Context, req graphql.Request, policy graphql.FetchPolicy) (*graphql.Response, error)
	Mutate(ctx context.Context, req graphql.Request) (*graphql.Response, error)
	ClearStore(ctx context.Context) error
}

// Client issues the service's queries and mutations and returns wire payloads.
type Client struct {
	transport Transport
}

func New(transport Transport) *Client {
	return &Client{transport: transport}
}

// GetCapabilities reads the service's supported countries and face image policy.
func (c *Client) GetCapabilities(ctx context.Context, option models.QueryOption) (*wire.IdentityVerificationCapabilities, error) {
	var data wire.GetIdentityVerificationCapabilitiesData
	err := c.query(ctx, graphql.Request{
		OperationName: wire.OpGetIdentityVerificationCapabilities,
		Query:         wire.GetIdentityVerificationCapabilitiesQuery,
	}, option, &data)
	if err != nil {
		return nil, err
	}
	if data.GetIdentityVerificationCapabilities == nil {
		return nil, noResult("getIdentityVerificationCapabilities")
	}
	return data.GetIdentityVerificationCapabilities, nil
}

// CheckIdentityVerification reads the signed in user's verification record.
func (c *Client) CheckIdentityVerification(ctx context.Context, option models.QueryOption) (*wire.VerifiedIdentity, error) {
	var data wire.CheckIdentityVerificationData
	err := c.query(ctx, graphql.Request{
		OperationName: wire.OpCheckIdentityVerification,
		Query:         wire.CheckIdentityVerificationQuery,
	}, option, &data)
	if err != nil {
		return nil, err
	}
	if data.CheckIdentityVerification == nil {
		return nil, noResult("checkIdentityVerification")
	}
	return data.CheckIdentityVerification, nil
}

// VerifyIdentity submits PII for knowledge based verification.
func (c *Client) VerifyIdentity(ctx context.Context, input wire.VerifyIdentityInput) (*wire.VerifiedIdentity, error) {
	var data wire.VerifyIdentityData
	err := c.mutate(ctx, graphql.Request{
		OperationName: wire.OpVerifyIdentity,
		Query:         wire.VerifyIdentityMutation,
		Variables:     wire.InputVariables[wire.VerifyIdentityInput]{Input: input},
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.VerifyIdentity == nil {
		return nil, noResult("verifyIdentity")
	}
	return data.VerifyIdentity, nil
}

// VerifyIdentityDocument submits document images for verification against a
// prior PII attempt.
func (c *Client) VerifyIdentityDocument(ctx context.Context, input wire.VerifyIdentityDocumentInput) (*wire.VerifiedIdentity, error) {
	var data wire.VerifyIdentityDocumentData
	err := c.mutate(ctx, graphql.Request{
		OperationName: wire.OpVerifyIdentityDocument,
		Query:         wire.VerifyIdentityDocumentMutation,
		Variables:     wire.InputVariables[wire.VerifyIdentityDocumentInput]{Input: input},
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.VerifyIdentityDocument == nil {
		return nil, noResult("verifyIdentityDocument")
	}
	return data.VerifyIdentityDocument, nil
}

// CaptureAndVerifyIdentityDocument submits document images from which the
// service extracts the identity fields itself.
func (c *Client) CaptureAndVerifyIdentityDocument(ctx context.Context, input wire.VerifyIdentityDocumentInput) (*wire.VerifiedIdentity, error) {
	var data wire.CaptureAndVerifyIdentityDocumentData
	err := c.mutate(ctx, graphql.Request{
		OperationName: wire.OpCaptureAndVerifyIdentityDocument,
		Query:         wire.CaptureAndVerifyIdentityDocumentMutation,
		Variables:     wire.InputVariables[wire.VerifyIdentityDocumentInput]{Input: input},
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.CaptureAndVerifyIdentityDocument == nil {
		return nil, noResult("captureAndVerifyIdentityDocument")
	}
	return data.CaptureAndVerifyIdentityDocument, nil
}

// Reset clears the transport's cached responses.
func (c *Client) Reset(ctx context.Context) error {
	return c.transport.ClearStore(ctx)
}

func (c *Client) query(ctx context.Context, req graphql.Request, option models.QueryOption, out any) error {
	resp, err := c.transport.Query(ctx, req, fetchPolicy(option))
	return decode(req.OperationName, resp, err, out)
}

func (c *Client) mutate(ctx context.Context, req graphql.Request, out any) error {
	resp, err := c.transport.Mutate(ctx, req)
	return decode(req.OperationName, resp, err, out)
}

// decode classifies transport and GraphQL errors, then unmarshals data into out.
// A response without data leaves out untouched.
func decode(operation string, resp *graphql.Response, err error, out any) error {
	if err != nil {
		return classifyTransportError(err)
	}
	if len(resp.Errors) > 0 {
		return transformers.ToClientError(resp.Errors[0])
	}
	if !resp.HasData() {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeFatal, fmt.Sprintf("unable to decode %s response", operation))
	}
	return nil
}

func classifyTransportError(err error) error {
	var reqErr *graphql.RequestError
	if errors.As(err, &reqErr) && len(reqErr.GraphQLErrors) > 0 {
		return transformers.ToClientError(reqErr.GraphQLErrors[0])
	}
	return dErrors.Wrap(err, dErrors.CodeUnknownGraphQL, fmt.Sprintf("unknown GraphQL error: %v", err))
}

func fetchPolicy(option models.QueryOption) graphql.FetchPolicy {
	if option == "" {
		return graphql.NetworkOnly
	}
	return graphql.FetchPolicy(option)
}

func noResult(field string) error {
	return dErrors.New(dErrors.CodeFatal, fmt.Sprintf("%s did not return any result", field))
}
