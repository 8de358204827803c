package common

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	dErrors "secureid/pkg/domain-errors"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	SignInAsNewUser() error
	SignInWithForeignToken() error
	SignOut()
	LastError() error
}

// RegisterSteps registers common step definitions used across features
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	// Background steps
	ctx.Step(`^the identity verification service is running$`, steps.serviceIsRunning)

	// Session steps
	ctx.Step(`^I am signed in as a new user$`, steps.signInAsNewUser)
	ctx.Step(`^I am signed in with a token the service does not trust$`, steps.signInWithForeignToken)
	ctx.Step(`^I am not signed in$`, steps.signOut)
	ctx.Step(`^I sign out$`, steps.signOut)

	// Outcome assertion steps
	ctx.Step(`^the operation should succeed$`, steps.operationShouldSucceed)
	ctx.Step(`^the operation should fail with code "([^"]*)"$`, steps.operationShouldFailWithCode)
	ctx.Step(`^the error message should be "([^"]*)"$`, steps.errorMessageShouldBe)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) serviceIsRunning(ctx context.Context) error {
	return nil
}

func (s *commonSteps) signInAsNewUser(ctx context.Context) error {
	return s.tc.SignInAsNewUser()
}

func (s *commonSteps) signInWithForeignToken(ctx context.Context) error {
	return s.tc.SignInWithForeignToken()
}

func (s *commonSteps) signOut(ctx context.Context) error {
	s.tc.SignOut()
	return nil
}

func (s *commonSteps) operationShouldSucceed(ctx context.Context) error {
	if err := s.tc.LastError(); err != nil {
		return fmt.Errorf("expected success but got: %w", err)
	}
	return nil
}

func (s *commonSteps) operationShouldFailWithCode(ctx context.Context, code string) error {
	err := s.tc.LastError()
	if err == nil {
		return fmt.Errorf("expected error with code %s but the operation succeeded", code)
	}
	if !dErrors.HasCode(err, dErrors.Code(code)) {
		return fmt.Errorf("expected error code %s but got %s: %v", code, dErrors.CodeOf(err), err)
	}
	return nil
}

func (s *commonSteps) errorMessageShouldBe(ctx context.Context, expected string) error {
	err := s.tc.LastError()
	if err == nil {
		return fmt.Errorf("expected error %q but the operation succeeded", expected)
	}
	if err.Error() != expected {
		return fmt.Errorf("expected error message %q but got %q", expected, err.Error())
	}
	return nil
}
