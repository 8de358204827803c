package e2e

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"secureid/internal/session"
	"secureid/internal/simulator"
	"secureid/pkg/secureid"
)

const (
	signingKey = "e2e-signing-key"
	issuerName = "secureid-simulator"
	audience   = "identity-verification"
)

// TestContext holds state between test steps
type TestContext struct {
	simConfig simulator.Config
	server    *httptest.Server
	issuer    *session.Issuer
	session   *secureid.TokenSession
	client    *secureid.Client
	imageDir  string

	lastIdentity     *secureid.VerifiedIdentity
	lastCapabilities *secureid.Capabilities
	lastErr          error
}

func NewTestContext() *TestContext {
	return &TestContext{
		issuer: session.NewIssuer(signingKey, issuerName, audience, time.Hour),
	}
}

// Start launches a fresh simulator and client.
func (tc *TestContext) Start() error {
	dir, err := os.MkdirTemp("", "secureid-e2e-*")
	if err != nil {
		return fmt.Errorf("failed to create image dir: %w", err)
	}
	tc.imageDir = dir
	return tc.startServer()
}

func (tc *TestContext) startServer() error {
	sim := simulator.New(tc.simConfig)
	tc.server = httptest.NewServer(simulator.NewRouter(simulator.NewHandler(sim, nil), tc.issuer, nil))

	cfg, err := secureid.ParseConfig([]byte(fmt.Sprintf(`{
		"apiService": {"apiUrl": %q},
		"identityVerificationService": {}
	}`, tc.server.URL+"/graphql")))
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	tc.session = secureid.NewSession()
	tc.client, err = secureid.New(context.Background(), cfg, tc.session)
	if err != nil {
		return fmt.Errorf("failed to build client: %w", err)
	}
	return nil
}

func (tc *TestContext) Stop() {
	if tc.server != nil {
		tc.server.Close()
	}
	if tc.imageDir != "" {
		_ = os.RemoveAll(tc.imageDir)
	}
}

// Configure restarts the simulator with fn applied to its configuration. The
// new simulator has no records and the session is signed out.
func (tc *TestContext) Configure(fn func(cfg *simulator.Config)) error {
	fn(&tc.simConfig)
	tc.server.Close()
	return tc.startServer()
}

func (tc *TestContext) Client() *secureid.Client {
	return tc.client
}

// SignInAsNewUser signs in with a token for a subject the simulator has never seen.
func (tc *TestContext) SignInAsNewUser() error {
	token, err := tc.issuer.Issue(uuid.NewString())
	if err != nil {
		return err
	}
	return tc.session.SignIn(token)
}

// SignInWithForeignToken signs in with a well formed token the simulator rejects.
func (tc *TestContext) SignInWithForeignToken() error {
	token, err := session.NewIssuer("some-other-key", issuerName, audience, time.Hour).Issue(uuid.NewString())
	if err != nil {
		return err
	}
	return tc.session.SignIn(token)
}

func (tc *TestContext) SignOut() {
	tc.session.SignOut()
}

// WriteImage stores a test image in the scenario's temp dir and returns its path.
func (tc *TestContext) WriteImage(name, format string) (string, error) {
	var data []byte
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		data = []byte("\xFF\xD8\xFF\xE0\x00\x10JFIF\x00\x01\x01")
	case "png":
		data = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR")
	case "gif":
		data = []byte("GIF89a\x01\x00\x01\x00")
	default:
		return "", fmt.Errorf("unknown image format %q", format)
	}
	path := filepath.Join(tc.imageDir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Record stores the outcome of the last client call.
func (tc *TestContext) Record(identity *secureid.VerifiedIdentity, err error) {
	tc.lastIdentity = identity
	tc.lastErr = err
}

func (tc *TestContext) RecordCapabilities(caps *secureid.Capabilities, err error) {
	tc.lastCapabilities = caps
	tc.lastErr = err
}

func (tc *TestContext) RecordError(err error) {
	tc.lastErr = err
}

func (tc *TestContext) LastIdentity() *secureid.VerifiedIdentity {
	return tc.lastIdentity
}

func (tc *TestContext) LastCapabilities() *secureid.Capabilities {
	return tc.lastCapabilities
}

func (tc *TestContext) LastError() error {
	return tc.lastErr
}
