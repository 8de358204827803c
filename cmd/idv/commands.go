package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"secureid/internal/platform/config"
	"secureid/internal/platform/logger"
	"secureid/internal/session"
	"secureid/pkg/secureid"
)

type clientFlags struct {
	token     string
	cacheOnly bool
}

func (f *clientFlags) queryOption() secureid.QueryOption {
	if f.cacheOnly {
		return secureid.QueryOptionCacheOnly
	}
	return secureid.QueryOptionRemoteOnly
}

// newClient builds a client for the user named by the token flag.
func (f *clientFlags) newClient(ctx context.Context) (*secureid.Client, error) {
	cfg, err := secureid.LoadConfig()
	if err != nil {
		return nil, err
	}
	logCfg, err := cfg.Log()
	if err != nil {
		return nil, err
	}

	sess := secureid.NewSession()
	if f.token != "" {
		if err := sess.SignIn(f.token); err != nil {
			return nil, err
		}
	}
	return secureid.New(ctx, cfg, sess, secureid.WithLogger(logger.New(logCfg.Level)))
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		return err
	}
	return nil
}

func runToken(_ context.Context, args []string) error {
	sim := config.SimulatorFromEnv()
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	subject := fs.String("subject", "", "Token subject. Generated if empty.")
	ttl := fs.Duration("ttl", sim.TokenTTL, "Token time-to-live")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *subject == "" {
		*subject = uuid.NewString()
	}

	token, err := session.NewIssuer(sim.JWTSigningKey, sim.TokenIssuer, sim.TokenAudience, *ttl).Issue(*subject)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func runCountries(ctx context.Context, args []string) error {
	fs, cf := flagSet("countries")
	if err := parse(fs, args); err != nil {
		return err
	}
	client, err := cf.newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	countries, err := client.ListSupportedCountries(ctx, cf.queryOption())
	if err != nil {
		return err
	}
	return printJSON(countries)
}

func runFaceRequired(ctx context.Context, args []string) error {
	fs, cf := flagSet("face-required")
	if err := parse(fs, args); err != nil {
		return err
	}
	client, err := cf.newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	required, err := client.IsFaceImageRequired(ctx, cf.queryOption())
	if err != nil {
		return err
	}
	return printJSON(required)
}

func runCapabilities(ctx context.Context, args []string) error {
	fs, cf := flagSet("capabilities")
	if err := parse(fs, args); err != nil {
		return err
	}
	client, err := cf.newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	caps, err := client.GetCapabilities(ctx, cf.queryOption())
	if err != nil {
		return err
	}
	return printJSON(capabilitiesOutput{
		SupportedCountries:            caps.SupportedCountries,
		FaceImageRequiredWithDocument: caps.FaceImageRequiredWithDocument,
	})
}

func runStatus(ctx context.Context, args []string) error {
	fs, cf := flagSet("status")
	if err := parse(fs, args); err != nil {
		return err
	}
	client, err := cf.newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	var (
		caps     *secureid.Capabilities
		identity *secureid.VerifiedIdentity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		caps, err = client.GetCapabilities(gctx, cf.queryOption())
		return err
	})
	g.Go(func() error {
		var err error
		identity, err = client.CheckIdentityVerification(gctx, cf.queryOption())
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return printJSON(statusOutput{
		Capabilities: capabilitiesOutput{
			SupportedCountries:            caps.SupportedCountries,
			FaceImageRequiredWithDocument: caps.FaceImageRequiredWithDocument,
		},
		Identity: toIdentityOutput(identity),
	})
}

func runVerify(ctx context.Context, args []string) error {
	fs, cf := flagSet("verify")
	var in secureid.VerifyIdentityInput
	fs.StringVar(&in.FirstName, "first", "", "First name")
	fs.StringVar(&in.LastName, "last", "", "Last name")
	fs.StringVar(&in.Address, "address", "", "Street address")
	city := fs.String("city", "", "City (optional)")
	state := fs.String("state", "", "State (optional)")
	fs.StringVar(&in.PostalCode, "postal", "", "Postal code")
	fs.StringVar(&in.Country, "country", "US", "ISO 3166-1 alpha-2 country code")
	fs.StringVar(&in.DateOfBirth, "dob", "", "Date of birth, YYYY-MM-DD")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *city != "" {
		in.City = city
	}
	if *state != "" {
		in.State = state
	}

	client, err := cf.newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	identity, err := client.VerifyIdentity(ctx, in)
	if err != nil {
		return err
	}
	return printJSON(toIdentityOutput(identity))
}

func runVerifyDocument(ctx context.Context, args []string) error {
	return runDocument(ctx, "verify-document", args, func(c *secureid.Client) documentFunc {
		return c.VerifyIdentityDocument
	})
}

func runCapture(ctx context.Context, args []string) error {
	return runDocument(ctx, "capture", args, func(c *secureid.Client) documentFunc {
		return c.CaptureAndVerifyIdentityDocument
	})
}

type documentFunc func(context.Context, secureid.VerifyIdentityDocumentInput) (*secureid.VerifiedIdentity, error)

func runDocument(ctx context.Context, name string, args []string, op func(*secureid.Client) documentFunc) error {
	fs, cf := flagSet(name)
	var info secureid.IDDocumentInfo
	fs.StringVar(&info.Country, "country", "US", "ISO 3166-1 alpha-2 country code")
	docType := fs.String("type", string(secureid.DocumentTypeDriverLicense), "driverLicense, passport or idCard")
	fs.StringVar(&info.FrontImagePath, "front", "", "Front image path")
	fs.StringVar(&info.BackImagePath, "back", "", "Back image path; repeat the front image for a passport")
	fs.StringVar(&info.FaceImagePath, "face", "", "Face image path (optional)")
	if err := parse(fs, args); err != nil {
		return err
	}
	info.DocumentType = secureid.DocumentType(*docType)

	input, err := secureid.BuildDocumentVerificationRequest(ctx, info)
	if err != nil {
		return err
	}

	client, err := cf.newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	identity, err := op(client)(ctx, *input)
	if err != nil {
		return err
	}
	return printJSON(toIdentityOutput(identity))
}

func runReset(ctx context.Context, args []string) error {
	fs, cf := flagSet("reset")
	if err := parse(fs, args); err != nil {
		return err
	}
	client, err := cf.newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Reset(ctx); err != nil {
		return err
	}
	fmt.Println("cache cleared")
	return nil
}

type capabilitiesOutput struct {
	SupportedCountries            []string `json:"supportedCountries"`
	FaceImageRequiredWithDocument bool     `json:"faceImageRequiredWithDocument"`
}

type identityOutput struct {
	Owner                       string   `json:"owner"`
	Verified                    bool     `json:"verified"`
	VerifiedAt                  string   `json:"verifiedAt,omitempty"`
	VerificationMethod          string   `json:"verificationMethod"`
	CanAttemptVerificationAgain bool     `json:"canAttemptVerificationAgain"`
	IDScanURL                   string   `json:"idScanUrl,omitempty"`
	RequiredVerificationMethod  string   `json:"requiredVerificationMethod,omitempty"`
	AcceptableDocumentTypes     []string `json:"acceptableDocumentTypes"`
	DocumentVerificationStatus  string   `json:"documentVerificationStatus"`
	VerificationLastAttemptedAt string   `json:"verificationLastAttemptedAt,omitempty"`
}

type statusOutput struct {
	Capabilities capabilitiesOutput `json:"capabilities"`
	Identity     identityOutput     `json:"identity"`
}

func toIdentityOutput(v *secureid.VerifiedIdentity) identityOutput {
	out := identityOutput{
		Owner:                       v.Owner,
		Verified:                    v.Verified,
		VerificationMethod:          v.VerificationMethod.String(),
		CanAttemptVerificationAgain: v.CanAttemptVerificationAgain,
		AcceptableDocumentTypes:     []string{},
		DocumentVerificationStatus:  v.DocumentVerificationStatus.String(),
		VerificationLastAttemptedAt: formatTime(v.VerificationLastAttemptedAt),
	}
	if !v.NeverVerified() {
		out.VerifiedAt = formatTime(v.VerifiedAt)
	}
	if v.IDScanURL != nil {
		out.IDScanURL = *v.IDScanURL
	}
	if v.RequiredVerificationMethod != nil {
		out.RequiredVerificationMethod = v.RequiredVerificationMethod.String()
	}
	for _, t := range v.AcceptableDocumentTypes {
		out.AcceptableDocumentTypes = append(out.AcceptableDocumentTypes, t.String())
	}
	return out
}
