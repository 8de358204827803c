package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"secureid/internal/platform/logger"
	"secureid/internal/verification/metrics"
	"secureid/internal/verification/models"
	"secureid/internal/verification/service/mocks"
	"secureid/internal/verification/wire"
	dErrors "secureid/pkg/domain-errors"
	fixtures "secureid/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	api     *mocks.MockAPIClient
	session *mocks.MockSession
	metrics *metrics.Metrics
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.api = mocks.NewMockAPIClient(s.ctrl)
	s.session = mocks.NewMockSession(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(s.api, s.session, WithMetrics(s.metrics))
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) signedIn() {
	s.session.EXPECT().IsSignedIn(gomock.Any()).Return(true, nil)
}

func (s *ServiceSuite) TestNotSignedInRejectsBeforeNetwork() {
	ctx := context.Background()
	calls := map[string]func() error{
		"listSupportedCountries": func() error {
			_, err := s.service.ListSupportedCountries(ctx, "")
			return err
		},
		"isFaceImageRequired": func() error {
			_, err := s.service.IsFaceImageRequired(ctx, "")
			return err
		},
		"getCapabilities": func() error {
			_, err := s.service.GetCapabilities(ctx, "")
			return err
		},
		"checkIdentityVerification": func() error {
			_, err := s.service.CheckIdentityVerification(ctx, "")
			return err
		},
		"verifyIdentity": func() error {
			// An illegal method must not be reported ahead of the session check.
			in := fixtures.ValidIdentity()
			in.VerificationMethod = models.VerificationMethodGovernmentID
			_, err := s.service.VerifyIdentity(ctx, in)
			return err
		},
		"verifyIdentityDocument": func() error {
			_, err := s.service.VerifyIdentityDocument(ctx, models.VerifyIdentityDocumentInput{})
			return err
		},
		"captureAndVerifyIdentityDocument": func() error {
			_, err := s.service.CaptureAndVerifyIdentityDocument(ctx, models.VerifyIdentityDocumentInput{})
			return err
		},
	}

	for name, call := range calls {
		s.Run(name, func() {
			s.session.EXPECT().IsSignedIn(gomock.Any()).Return(false, nil)
			// No api expectations: any api call fails the test.
			err := call()
			s.True(dErrors.HasCode(err, dErrors.CodeNotSignedIn), "got %v", err)
			s.True(dErrors.IsPrecondition(err))
		})
	}
	s.Equal(1.0, testutil.ToFloat64(s.metrics.OperationsTotal.WithLabelValues("listSupportedCountries", "not_signed_in")))
}

func (s *ServiceSuite) TestCapabilityLogsFollowSessionCheck() {
	ctx := context.Background()
	var buf bytes.Buffer
	svc := New(s.api, s.session, WithLogger(logger.NewWithWriter(&buf, "info")))
	messages := []string{
		"Listing supported countries for identity verification",
		"Determining requirement to provide face image with ID document",
		"Retrieving identity verification capabilities",
	}

	s.session.EXPECT().IsSignedIn(gomock.Any()).Return(false, nil).Times(3)
	_, _ = svc.ListSupportedCountries(ctx, "")
	_, _ = svc.IsFaceImageRequired(ctx, "")
	_, _ = svc.GetCapabilities(ctx, "")
	for _, msg := range messages {
		s.NotContains(buf.String(), msg)
	}

	caps := &wire.IdentityVerificationCapabilities{SupportedCountries: []string{"US"}}
	s.session.EXPECT().IsSignedIn(gomock.Any()).Return(true, nil).Times(3)
	s.api.EXPECT().GetCapabilities(gomock.Any(), gomock.Any()).Return(caps, nil).Times(3)
	_, err := svc.ListSupportedCountries(ctx, "")
	s.Require().NoError(err)
	_, err = svc.IsFaceImageRequired(ctx, "")
	s.Require().NoError(err)
	_, err = svc.GetCapabilities(ctx, "")
	s.Require().NoError(err)
	for _, msg := range messages {
		s.Contains(buf.String(), msg)
	}
}

func (s *ServiceSuite) TestSessionErrorPropagates() {
	sessionErr := errors.New("keychain locked")
	s.session.EXPECT().IsSignedIn(gomock.Any()).Return(false, sessionErr)

	_, err := s.service.CheckIdentityVerification(context.Background(), "")
	s.ErrorIs(err, sessionErr)
}

func (s *ServiceSuite) TestCapabilities() {
	ctx := context.Background()
	caps := &wire.IdentityVerificationCapabilities{SupportedCountries: []string{"US", "CA"}, FaceImageRequiredWithDocument: true}

	s.Run("list supported countries passes query option through", func() {
		s.signedIn()
		s.api.EXPECT().GetCapabilities(gomock.Any(), models.QueryOptionCacheOnly).Return(caps, nil)

		got, err := s.service.ListSupportedCountries(ctx, models.QueryOptionCacheOnly)
		s.Require().NoError(err)
		s.Equal([]string{"US", "CA"}, got)
	})

	s.Run("face image requirement", func() {
		s.signedIn()
		s.api.EXPECT().GetCapabilities(gomock.Any(), models.QueryOption("")).Return(caps, nil)

		got, err := s.service.IsFaceImageRequired(ctx, "")
		s.Require().NoError(err)
		s.True(got)
	})

	s.Run("get capabilities", func() {
		s.signedIn()
		s.api.EXPECT().GetCapabilities(gomock.Any(), models.QueryOptionRemoteOnly).Return(caps, nil)

		got, err := s.service.GetCapabilities(ctx, models.QueryOptionRemoteOnly)
		s.Require().NoError(err)
		s.Equal(models.Capabilities{SupportedCountries: []string{"US", "CA"}, FaceImageRequiredWithDocument: true}, *got)
	})

	s.Run("api errors surface unchanged", func() {
		s.signedIn()
		fatal := dErrors.New(dErrors.CodeFatal, "getIdentityVerificationCapabilities did not return any result")
		s.api.EXPECT().GetCapabilities(gomock.Any(), models.QueryOptionCacheOnly).Return(nil, fatal)

		_, err := s.service.ListSupportedCountries(ctx, models.QueryOptionCacheOnly)
		s.Equal(fatal, err)
	})
}

func (s *ServiceSuite) TestCheckIdentityVerification_NewUser() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	record := fixtures.NewWireIdentityBuilder().WithOwner("o-uuid").AttemptedAt(now).Build()

	s.signedIn()
	s.api.EXPECT().CheckIdentityVerification(gomock.Any(), models.QueryOption("")).Return(record, nil)

	got, err := s.service.CheckIdentityVerification(context.Background(), "")
	s.Require().NoError(err)

	s.Equal("o-uuid", got.Owner)
	s.False(got.Verified)
	s.Equal(models.VerificationMethodNone, got.VerificationMethod)
	s.True(got.CanAttemptVerificationAgain)
	s.Require().NotNil(got.VerifiedAt)
	s.Equal(int64(0), got.VerifiedAt.UnixMilli())
	s.True(got.NeverVerified())
	s.Equal(models.VerificationMethodKnowledgeOfPII, *got.RequiredVerificationMethod)
	s.Empty(got.AcceptableDocumentTypes)
	s.Equal(models.DocumentVerificationStatusNotRequired, got.DocumentVerificationStatus)
	s.Require().NotNil(got.VerificationLastAttemptedAt)
	s.True(now.Equal(*got.VerificationLastAttemptedAt))
	s.Nil(got.IDScanURL)
}

func (s *ServiceSuite) TestCheckIdentityVerification_UnrecognizedValueIsFatal() {
	record := fixtures.NewWireIdentityBuilder().WithRawVerificationMethod("RETINA_SCAN").Build()
	s.signedIn()
	s.api.EXPECT().CheckIdentityVerification(gomock.Any(), gomock.Any()).Return(record, nil)

	_, err := s.service.CheckIdentityVerification(context.Background(), "")
	s.True(dErrors.IsFatal(err))
	s.Contains(err.Error(), "RETINA_SCAN")
}

func (s *ServiceSuite) TestCheckIdentityVerification_DocumentRequired() {
	record := fixtures.NewWireIdentityBuilder().
		WithoutVerifiedAt().
		WithRequiredMethod(models.VerificationMethodGovernmentID).
		WithAcceptableDocumentTypes(models.DocumentTypeDriverLicense, models.DocumentTypeIDCard).
		WithDocumentStatus(models.DocumentVerificationStatusNotAttempted).
		WithIDScanURL("https://idscan.example.com/session/1").
		Build()
	s.signedIn()
	s.api.EXPECT().CheckIdentityVerification(gomock.Any(), gomock.Any()).Return(record, nil)

	got, err := s.service.CheckIdentityVerification(context.Background(), "")
	s.Require().NoError(err)

	s.Nil(got.VerifiedAt)
	s.True(got.NeverVerified())
	s.Equal(models.VerificationMethodGovernmentID, *got.RequiredVerificationMethod)
	s.Equal([]models.DocumentType{models.DocumentTypeDriverLicense, models.DocumentTypeIDCard}, got.AcceptableDocumentTypes)
	s.Equal(models.DocumentVerificationStatusNotAttempted, got.DocumentVerificationStatus)
	s.Require().NotNil(got.IDScanURL)
	s.Equal("https://idscan.example.com/session/1", *got.IDScanURL)
}

func (s *ServiceSuite) TestVerifyIdentity() {
	ctx := context.Background()

	s.Run("defaults method to knowledge of pii", func() {
		s.signedIn()
		s.api.EXPECT().
			VerifyIdentity(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in wire.VerifyIdentityInput) (*wire.VerifiedIdentity, error) {
				s.Require().NotNil(in.VerificationMethod)
				s.Equal("KNOWLEDGE_OF_PII", *in.VerificationMethod)
				s.Equal("JOHN", in.FirstName)
				s.Nil(in.City)
				return fixtures.NewWireIdentityBuilder().
					VerifiedBy(models.VerificationMethodKnowledgeOfPII, time.Now()).
					Build(), nil
			})

		got, err := s.service.VerifyIdentity(ctx, fixtures.ValidIdentity())
		s.Require().NoError(err)
		s.True(got.Verified)
		s.False(got.NeverVerified())
		s.Equal(models.VerificationMethodKnowledgeOfPII, got.VerificationMethod)
	})

	s.Run("accepts explicit default", func() {
		s.signedIn()
		s.api.EXPECT().VerifyIdentity(gomock.Any(), gomock.Any()).
			Return(fixtures.NewWireIdentityBuilder().Build(), nil)

		in := fixtures.ValidIdentityWithCityState()
		in.VerificationMethod = models.VerificationMethodKnowledgeOfPII
		_, err := s.service.VerifyIdentity(ctx, in)
		s.Require().NoError(err)
	})

	s.Run("rejects government id before network", func() {
		s.signedIn()
		in := fixtures.ValidIdentity()
		in.VerificationMethod = models.VerificationMethodGovernmentID

		_, err := s.service.VerifyIdentity(ctx, in)
		s.True(dErrors.HasCode(err, dErrors.CodeIllegalArgument))
		s.Contains(err.Error(), "GOVERNMENT_ID")
		s.Contains(err.Error(), "verifyIdentity")
	})

	s.Run("classified service errors surface", func() {
		s.signedIn()
		s.api.EXPECT().VerifyIdentity(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeImplausibleAge, "age of 150 is implausible"))

		_, err := s.service.VerifyIdentity(ctx, fixtures.ValidIdentity())
		s.True(dErrors.HasCode(err, dErrors.CodeImplausibleAge))
	})

	s.Equal(1.0, testutil.ToFloat64(s.metrics.OutcomesTotal.WithLabelValues("verifyIdentity", "true")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.OperationsTotal.WithLabelValues("verifyIdentity", "illegal_argument")))
}

func (s *ServiceSuite) TestVerifyIdentity_DoesNotMutateCallerInput() {
	s.signedIn()
	s.api.EXPECT().VerifyIdentity(gomock.Any(), gomock.Any()).Return(fixtures.NewWireIdentityBuilder().Build(), nil)

	in := fixtures.InvalidIdentity()
	_, err := s.service.VerifyIdentity(context.Background(), in)
	s.Require().NoError(err)
	s.True(in.VerificationMethod.IsZero())
}

func (s *ServiceSuite) TestDocumentVerification() {
	ctx := context.Background()
	face := "ZmFjZQ=="
	input := models.VerifyIdentityDocumentInput{
		ImageBase64:     "ZnJvbnQ=",
		BackImageBase64: "YmFjaw==",
		FaceImageBase64: &face,
		Country:         "US",
		DocumentType:    models.DocumentTypeDriverLicense,
	}
	succeeded := fixtures.NewWireIdentityBuilder().
		VerifiedBy(models.VerificationMethodGovernmentID, time.Now()).
		WithRequiredMethod(models.VerificationMethodGovernmentID).
		WithDocumentStatus(models.DocumentVerificationStatusSucceeded).
		Build()

	s.Run("verify document defaults method to government id", func() {
		s.signedIn()
		s.api.EXPECT().
			VerifyIdentityDocument(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in wire.VerifyIdentityDocumentInput) (*wire.VerifiedIdentity, error) {
				s.Equal("GOVERNMENT_ID", *in.VerificationMethod)
				s.Equal("driverLicense", in.DocumentType)
				s.Equal(&face, in.FaceImageBase64)
				return succeeded, nil
			})

		got, err := s.service.VerifyIdentityDocument(ctx, input)
		s.Require().NoError(err)
		s.Equal(models.DocumentVerificationStatusSucceeded, got.DocumentVerificationStatus)
		s.Equal(models.VerificationMethodGovernmentID, got.VerificationMethod)
	})

	s.Run("verify document rejects knowledge of pii", func() {
		s.signedIn()
		bad := input
		bad.VerificationMethod = models.VerificationMethodKnowledgeOfPII

		_, err := s.service.VerifyIdentityDocument(ctx, bad)
		s.True(dErrors.HasCode(err, dErrors.CodeIllegalArgument))
		s.Equal("KNOWLEDGE_OF_PII is not a supported verification method for verifyIdentityDocument", err.Error())
	})

	s.Run("capture uses its own mutation", func() {
		s.signedIn()
		s.api.EXPECT().CaptureAndVerifyIdentityDocument(gomock.Any(), gomock.Any()).Return(succeeded, nil)

		got, err := s.service.CaptureAndVerifyIdentityDocument(ctx, input)
		s.Require().NoError(err)
		s.True(got.Verified)
	})

	s.Run("capture rejects none", func() {
		s.signedIn()
		bad := input
		bad.VerificationMethod = models.VerificationMethodNone

		_, err := s.service.CaptureAndVerifyIdentityDocument(ctx, bad)
		s.Equal("NONE is not a supported verification method for captureAndVerifyIdentityDocument", err.Error())
	})

	s.Run("update failure surfaces", func() {
		s.signedIn()
		s.api.EXPECT().VerifyIdentityDocument(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeIdentityVerificationUpdateFailed, "no prior attempt"))

		_, err := s.service.VerifyIdentityDocument(ctx, input)
		s.True(dErrors.HasCode(err, dErrors.CodeIdentityVerificationUpdateFailed))
	})
}

func (s *ServiceSuite) TestReset() {
	s.Run("does not require a session", func() {
		s.api.EXPECT().Reset(gomock.Any()).Return(nil)
		s.NoError(s.service.Reset(context.Background()))
	})

	s.Run("propagates cache errors", func() {
		s.api.EXPECT().Reset(gomock.Any()).Return(errors.New("redis unavailable"))
		s.ErrorContains(s.service.Reset(context.Background()), "redis unavailable")
	})
}

func (s *ServiceSuite) TestConcurrentCalls() {
	s.session.EXPECT().IsSignedIn(gomock.Any()).Return(true, nil).AnyTimes()
	s.api.EXPECT().CheckIdentityVerification(gomock.Any(), gomock.Any()).
		Return(fixtures.NewWireIdentityBuilder().Build(), nil).Times(25)
	s.api.EXPECT().VerifyIdentity(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeVersionMismatch, "conflict")).Times(25)

	result := fixtures.RunConcurrent(50, func(idx int) error {
		if idx%2 == 0 {
			_, err := s.service.CheckIdentityVerification(context.Background(), "")
			return err
		}
		_, err := s.service.VerifyIdentity(context.Background(), fixtures.ValidIdentity())
		return err
	})

	s.Equal(int32(25), result.Successes)
	s.Equal(int32(25), result.Conflicts)
	s.Equal(int32(50), result.Total())
}
