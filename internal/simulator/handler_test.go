package simulator

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"secureid/internal/platform/metrics"
	"secureid/internal/session"
	"secureid/internal/verification/transformers"
	"secureid/internal/verification/wire"
	graphqlErrors "secureid/pkg/graphql-errors"
)

type graphQLResponse struct {
	Data   json.RawMessage              `json:"data"`
	Errors []graphqlErrors.AppSyncError `json:"errors"`
}

type HandlerSuite struct {
	suite.Suite
	issuer  *session.Issuer
	metrics *metrics.Metrics
	router  http.Handler
	token   string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.issuer = session.NewIssuer("test-key", "secureid-simulator", "identity-verification", time.Hour)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.router = NewRouter(NewHandler(New(Config{}), nil, WithMetrics(s.metrics)), s.issuer, nil)

	token, err := s.issuer.Issue("owner-1")
	s.Require().NoError(err)
	s.token = token
}

func (s *HandlerSuite) post(token string, body any) (*httptest.ResponseRecorder, graphQLResponse) {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var resp graphQLResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func (s *HandlerSuite) TestCheckIdentityVerification() {
	rec, resp := s.post(s.token, map[string]any{
		"operationName": wire.OpCheckIdentityVerification,
		"query":         wire.CheckIdentityVerificationQuery,
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Empty(resp.Errors)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.OperationsTotal.WithLabelValues(wire.OpCheckIdentityVerification, "none")))

	var data wire.CheckIdentityVerificationData
	s.Require().NoError(json.Unmarshal(resp.Data, &data))
	s.Require().NotNil(data.CheckIdentityVerification)
	s.Equal("owner-1", data.CheckIdentityVerification.Owner)
	s.Equal(0.0, *data.CheckIdentityVerification.VerifiedAtEpochMs)
}

func (s *HandlerSuite) TestVerifyIdentity() {
	_, resp := s.post("Bearer "+s.token, map[string]any{
		"operationName": wire.OpVerifyIdentity,
		"query":         wire.VerifyIdentityMutation,
		"variables": wire.InputVariables[wire.VerifyIdentityInput]{Input: wire.VerifyIdentityInput{
			FirstName:   "JOHN",
			LastName:    "SMITH",
			Address:     "222333 PEACHTREE PLACE",
			PostalCode:  "30318",
			Country:     "US",
			DateOfBirth: "1975-02-28",
		}},
	})
	s.Empty(resp.Errors)

	var data wire.VerifyIdentityData
	s.Require().NoError(json.Unmarshal(resp.Data, &data))
	s.True(data.VerifyIdentity.Verified)
}

func (s *HandlerSuite) TestServiceErrorsUseGraphQLEnvelope() {
	rec, resp := s.post(s.token, map[string]any{
		"operationName": wire.OpVerifyIdentity,
		"query":         wire.VerifyIdentityMutation,
		"variables": map[string]any{"input": map[string]any{
			"firstName": "JOHN", "lastName": "SMITH", "country": "NZ", "dateOfBirth": "1975-02-28",
		}},
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("null", string(resp.Data))
	s.Require().Len(resp.Errors, 1)
	s.Equal(transformers.ErrorTypeUnsupportedCountry, resp.Errors[0].ErrorType)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.OperationsTotal.WithLabelValues(wire.OpVerifyIdentity, transformers.ErrorTypeUnsupportedCountry)))
}

func (s *HandlerSuite) TestMissingVariables() {
	_, resp := s.post(s.token, map[string]any{"operationName": wire.OpVerifyIdentityDocument})
	s.Require().Len(resp.Errors, 1)
	s.Equal(graphqlErrors.TypeInvalidArgument, resp.Errors[0].ErrorType)
}

func (s *HandlerSuite) TestUnknownOperation() {
	_, resp := s.post(s.token, map[string]any{"operationName": "DeleteEverything"})
	s.Require().Len(resp.Errors, 1)
	s.Equal(graphqlErrors.TypeInvalidArgument, resp.Errors[0].ErrorType)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.OperationsTotal.WithLabelValues("unknown", graphqlErrors.TypeInvalidArgument)))
}

func (s *HandlerSuite) TestUnauthorized() {
	for name, token := range map[string]string{
		"missing": "",
		"garbage": "not-a-jwt",
		"foreign": func() string {
			t, err := session.NewIssuer("other-key", "secureid-simulator", "identity-verification", time.Hour).Issue("owner-1")
			s.Require().NoError(err)
			return t
		}(),
	} {
		s.Run(name, func() {
			rec, resp := s.post(token, map[string]any{"operationName": wire.OpCheckIdentityVerification})
			s.Equal(http.StatusUnauthorized, rec.Code)
			s.Require().Len(resp.Errors, 1)
			s.Equal(graphqlErrors.TypeInvalidToken, resp.Errors[0].ErrorType)
		})
	}
	s.Equal(3.0, testutil.ToFloat64(s.metrics.AuthFailures))
}

func (s *HandlerSuite) TestMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader([]byte(`{"operationName":`)))
	req.Header.Set("Authorization", s.token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), graphqlErrors.TypeDecoding)
}

func (s *HandlerSuite) TestHealth() {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"status":"ok"`)
}
