package verification

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cucumber/godog"

	"secureid/internal/simulator"
	"secureid/pkg/secureid"
	"secureid/pkg/testutil"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Client() *secureid.Client
	Configure(fn func(cfg *simulator.Config)) error
	WriteImage(name, format string) (string, error)
	Record(identity *secureid.VerifiedIdentity, err error)
	RecordCapabilities(caps *secureid.Capabilities, err error)
	RecordError(err error)
	LastIdentity() *secureid.VerifiedIdentity
	LastCapabilities() *secureid.Capabilities
}

// RegisterSteps registers identity verification step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &verificationSteps{tc: tc}

	// Service setup steps
	ctx.Step(`^the service supports countries "([^"]*)"$`, steps.serviceSupportsCountries)
	ctx.Step(`^the service requires a face image with documents$`, steps.serviceRequiresFaceImage)

	// Capability steps
	ctx.Step(`^I list the supported countries$`, steps.listSupportedCountries)
	ctx.Step(`^I check whether a face image is required$`, steps.checkFaceImageRequired)
	ctx.Step(`^the supported countries should be "([^"]*)"$`, steps.supportedCountriesShouldBe)
	ctx.Step(`^a face image should (not )?be required$`, steps.faceImageShouldBeRequired)

	// Status steps
	ctx.Step(`^I check my identity verification status$`, steps.checkStatus)
	ctx.Step(`^I check my identity verification status from the cache$`, steps.checkStatusFromCache)
	ctx.Step(`^I reset the client$`, steps.reset)

	// PII verification steps
	ctx.Step(`^I verify my identity as "([^"]*)" "([^"]*)"$`, steps.verifyAs)
	ctx.Step(`^I verify my identity as "([^"]*)" "([^"]*)" in "([^"]*)"$`, steps.verifyAsInCountry)
	ctx.Step(`^I verify my identity as "([^"]*)" "([^"]*)" born on "([^"]*)"$`, steps.verifyAsBornOn)
	ctx.Step(`^I verify my identity as "([^"]*)" "([^"]*)" with method "([^"]*)"$`, steps.verifyAsWithMethod)
	ctx.Step(`^I fail PII verification (\d+) times$`, steps.failPIIVerification)

	// Document verification steps
	ctx.Step(`^I submit a "([^"]*)" image of my "([^"]*)" for verification$`, steps.submitDocument)
	ctx.Step(`^I capture a "([^"]*)" image of my "([^"]*)" for verification$`, steps.captureDocument)
	ctx.Step(`^I submit a "([^"]*)" image of my "([^"]*)" with method "([^"]*)"$`, steps.submitDocumentWithMethod)
	ctx.Step(`^I capture a "([^"]*)" image of my "([^"]*)" with method "([^"]*)"$`, steps.captureDocumentWithMethod)

	// Identity assertion steps
	ctx.Step(`^my identity should (not )?be verified$`, steps.identityShouldBeVerified)
	ctx.Step(`^my identity should never have been verified$`, steps.identityShouldNeverHaveBeenVerified)
	ctx.Step(`^the verification method should be "([^"]*)"$`, steps.verificationMethodShouldBe)
	ctx.Step(`^the required verification method should be "([^"]*)"$`, steps.requiredMethodShouldBe)
	ctx.Step(`^I should (not )?be able to attempt verification again$`, steps.canAttemptAgainShouldBe)
	ctx.Step(`^the acceptable document types should be "([^"]*)"$`, steps.acceptableDocumentTypesShouldBe)
	ctx.Step(`^the document verification status should be "([^"]*)"$`, steps.documentStatusShouldBe)
	ctx.Step(`^the last attempt time should be recorded$`, steps.lastAttemptShouldBeRecorded)
}

type verificationSteps struct {
	tc TestContext
}

func (s *verificationSteps) serviceSupportsCountries(ctx context.Context, countries string) error {
	return s.tc.Configure(func(cfg *simulator.Config) {
		cfg.SupportedCountries = splitList(countries)
	})
}

func (s *verificationSteps) serviceRequiresFaceImage(ctx context.Context) error {
	return s.tc.Configure(func(cfg *simulator.Config) {
		cfg.FaceImageRequired = true
	})
}

func (s *verificationSteps) listSupportedCountries(ctx context.Context) error {
	countries, err := s.tc.Client().ListSupportedCountries(ctx, secureid.QueryOptionRemoteOnly)
	s.tc.RecordCapabilities(&secureid.Capabilities{SupportedCountries: countries}, err)
	return nil
}

func (s *verificationSteps) checkFaceImageRequired(ctx context.Context) error {
	required, err := s.tc.Client().IsFaceImageRequired(ctx, secureid.QueryOptionRemoteOnly)
	s.tc.RecordCapabilities(&secureid.Capabilities{FaceImageRequiredWithDocument: required}, err)
	return nil
}

func (s *verificationSteps) supportedCountriesShouldBe(ctx context.Context, expected string) error {
	caps := s.tc.LastCapabilities()
	if caps == nil {
		return fmt.Errorf("no capabilities were fetched")
	}
	if !slices.Equal(caps.SupportedCountries, splitList(expected)) {
		return fmt.Errorf("expected countries %s but got %v", expected, caps.SupportedCountries)
	}
	return nil
}

func (s *verificationSteps) faceImageShouldBeRequired(ctx context.Context, not string) error {
	caps := s.tc.LastCapabilities()
	if caps == nil {
		return fmt.Errorf("no capabilities were fetched")
	}
	if want := not == ""; caps.FaceImageRequiredWithDocument != want {
		return fmt.Errorf("expected face image required %t but got %t", want, caps.FaceImageRequiredWithDocument)
	}
	return nil
}

func (s *verificationSteps) checkStatus(ctx context.Context) error {
	s.tc.Record(s.tc.Client().CheckIdentityVerification(ctx, secureid.QueryOptionRemoteOnly))
	return nil
}

func (s *verificationSteps) checkStatusFromCache(ctx context.Context) error {
	s.tc.Record(s.tc.Client().CheckIdentityVerification(ctx, secureid.QueryOptionCacheOnly))
	return nil
}

func (s *verificationSteps) reset(ctx context.Context) error {
	s.tc.RecordError(s.tc.Client().Reset(ctx))
	return nil
}

func (s *verificationSteps) verifyAs(ctx context.Context, first, last string) error {
	return s.verify(ctx, piiFor(first, last))
}

func (s *verificationSteps) verifyAsInCountry(ctx context.Context, first, last, country string) error {
	in := piiFor(first, last)
	in.Country = country
	return s.verify(ctx, in)
}

func (s *verificationSteps) verifyAsBornOn(ctx context.Context, first, last, dob string) error {
	in := piiFor(first, last)
	in.DateOfBirth = dob
	return s.verify(ctx, in)
}

func (s *verificationSteps) verifyAsWithMethod(ctx context.Context, first, last, method string) error {
	in := piiFor(first, last)
	in.VerificationMethod = secureid.VerificationMethod(method)
	return s.verify(ctx, in)
}

func (s *verificationSteps) failPIIVerification(ctx context.Context, times int) error {
	for i := 0; i < times; i++ {
		identity, err := s.tc.Client().VerifyIdentity(ctx, testutil.InvalidIdentity())
		if err != nil {
			return fmt.Errorf("attempt %d failed: %w", i+1, err)
		}
		s.tc.Record(identity, nil)
	}
	return nil
}

func (s *verificationSteps) verify(ctx context.Context, in secureid.VerifyIdentityInput) error {
	s.tc.Record(s.tc.Client().VerifyIdentity(ctx, in))
	return nil
}

func (s *verificationSteps) submitDocument(ctx context.Context, format, docType string) error {
	return s.document(ctx, format, docType, "", false)
}

func (s *verificationSteps) captureDocument(ctx context.Context, format, docType string) error {
	return s.document(ctx, format, docType, "", true)
}

func (s *verificationSteps) submitDocumentWithMethod(ctx context.Context, format, docType, method string) error {
	return s.document(ctx, format, docType, method, false)
}

func (s *verificationSteps) captureDocumentWithMethod(ctx context.Context, format, docType, method string) error {
	return s.document(ctx, format, docType, method, true)
}

func (s *verificationSteps) document(ctx context.Context, format, docType, method string, capture bool) error {
	front, err := s.tc.WriteImage("front."+format, format)
	if err != nil {
		return err
	}
	back := front
	if docType != string(secureid.DocumentTypePassport) {
		if back, err = s.tc.WriteImage("back."+format, format); err != nil {
			return err
		}
	}

	input, err := secureid.BuildDocumentVerificationRequest(ctx, secureid.IDDocumentInfo{
		Country:        "US",
		DocumentType:   secureid.DocumentType(docType),
		FrontImagePath: front,
		BackImagePath:  back,
	})
	if err != nil {
		return fmt.Errorf("failed to build document request: %w", err)
	}
	if method != "" {
		input.VerificationMethod = secureid.VerificationMethod(method)
	}

	if capture {
		s.tc.Record(s.tc.Client().CaptureAndVerifyIdentityDocument(ctx, *input))
	} else {
		s.tc.Record(s.tc.Client().VerifyIdentityDocument(ctx, *input))
	}
	return nil
}

func (s *verificationSteps) identity() (*secureid.VerifiedIdentity, error) {
	identity := s.tc.LastIdentity()
	if identity == nil {
		return nil, fmt.Errorf("no verified identity was returned")
	}
	return identity, nil
}

func (s *verificationSteps) identityShouldBeVerified(ctx context.Context, not string) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}
	if want := not == ""; identity.Verified != want {
		return fmt.Errorf("expected verified %t but got %t", want, identity.Verified)
	}
	return nil
}

func (s *verificationSteps) identityShouldNeverHaveBeenVerified(ctx context.Context) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}
	if !identity.NeverVerified() {
		return fmt.Errorf("expected no verification time but got %v", identity.VerifiedAt)
	}
	return nil
}

func (s *verificationSteps) verificationMethodShouldBe(ctx context.Context, expected string) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}
	if identity.VerificationMethod.String() != expected {
		return fmt.Errorf("expected verification method %s but got %s", expected, identity.VerificationMethod)
	}
	return nil
}

func (s *verificationSteps) requiredMethodShouldBe(ctx context.Context, expected string) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}
	if identity.RequiredVerificationMethod == nil {
		return fmt.Errorf("expected required method %s but none was reported", expected)
	}
	if identity.RequiredVerificationMethod.String() != expected {
		return fmt.Errorf("expected required method %s but got %s", expected, *identity.RequiredVerificationMethod)
	}
	return nil
}

func (s *verificationSteps) canAttemptAgainShouldBe(ctx context.Context, not string) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}
	if want := not == ""; identity.CanAttemptVerificationAgain != want {
		return fmt.Errorf("expected canAttemptVerificationAgain %t but got %t", want, identity.CanAttemptVerificationAgain)
	}
	return nil
}

func (s *verificationSteps) acceptableDocumentTypesShouldBe(ctx context.Context, expected string) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}
	got := make([]string, 0, len(identity.AcceptableDocumentTypes))
	for _, t := range identity.AcceptableDocumentTypes {
		got = append(got, t.String())
	}
	if !slices.Equal(got, splitList(expected)) {
		return fmt.Errorf("expected acceptable document types %q but got %v", expected, got)
	}
	return nil
}

func (s *verificationSteps) documentStatusShouldBe(ctx context.Context, expected string) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}
	if identity.DocumentVerificationStatus.String() != expected {
		return fmt.Errorf("expected document status %s but got %s", expected, identity.DocumentVerificationStatus)
	}
	return nil
}

func (s *verificationSteps) lastAttemptShouldBeRecorded(ctx context.Context) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}
	if identity.VerificationLastAttemptedAt == nil || identity.VerificationLastAttemptedAt.UnixMilli() == 0 {
		return fmt.Errorf("expected a last attempt time but got %v", identity.VerificationLastAttemptedAt)
	}
	return nil
}

func piiFor(first, last string) secureid.VerifyIdentityInput {
	in := testutil.ValidIdentity()
	in.FirstName = first
	in.LastName = last
	return in
}

// splitList parses a comma separated list; the empty string is the empty list.
func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
