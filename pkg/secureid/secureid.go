// Package secureid is the public entry point of the identity verification
// client. It re-exports the entity types and builds a ready client from the
// platform configuration document.
//
//	cfg, err := secureid.LoadConfig()
//	sess := secureid.NewSession()
//	_ = sess.SignIn(idToken)
//	client, err := secureid.New(ctx, cfg, sess)
//	identity, err := client.CheckIdentityVerification(ctx, secureid.QueryOptionRemoteOnly)
package secureid

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"secureid/internal/platform/config"
	"secureid/internal/platform/graphql"
	"secureid/internal/platform/redis"
	"secureid/internal/platform/tracer"
	"secureid/internal/session"
	"secureid/internal/verification/apiclient"
	"secureid/internal/verification/document"
	"secureid/internal/verification/metrics"
	"secureid/internal/verification/models"
	"secureid/internal/verification/service"
	dErrors "secureid/pkg/domain-errors"
)

// Version is reported in the User-Agent header.
const Version = "1.0.0"

type (
	VerifiedIdentity            = models.VerifiedIdentity
	VerifyIdentityInput         = models.VerifyIdentityInput
	VerifyIdentityDocumentInput = models.VerifyIdentityDocumentInput
	IDDocumentInfo              = models.IDDocumentInfo
	Capabilities                = models.Capabilities
	VerificationMethod          = models.VerificationMethod
	DocumentType                = models.DocumentType
	DocumentVerificationStatus  = models.DocumentVerificationStatus
	QueryOption                 = models.QueryOption

	Config       = config.Config
	TokenSession = session.TokenSession
	Tracer       = tracer.Tracer
)

const (
	VerificationMethodNone           = models.VerificationMethodNone
	VerificationMethodKnowledgeOfPII = models.VerificationMethodKnowledgeOfPII
	VerificationMethodGovernmentID   = models.VerificationMethodGovernmentID

	DocumentTypeDriverLicense = models.DocumentTypeDriverLicense
	DocumentTypePassport      = models.DocumentTypePassport
	DocumentTypeIDCard        = models.DocumentTypeIDCard

	DocumentVerificationStatusNotRequired        = models.DocumentVerificationStatusNotRequired
	DocumentVerificationStatusNotAttempted       = models.DocumentVerificationStatusNotAttempted
	DocumentVerificationStatusPending            = models.DocumentVerificationStatusPending
	DocumentVerificationStatusDocumentUnreadable = models.DocumentVerificationStatusDocumentUnreadable
	DocumentVerificationStatusFailed             = models.DocumentVerificationStatusFailed
	DocumentVerificationStatusSucceeded          = models.DocumentVerificationStatusSucceeded

	QueryOptionCacheOnly  = models.QueryOptionCacheOnly
	QueryOptionRemoteOnly = models.QueryOptionRemoteOnly
)

// SessionProvider reports whether a user is signed in and supplies the token
// sent with each request. TokenSession implements it.
type SessionProvider interface {
	IsSignedIn(ctx context.Context) (bool, error)
	AuthToken(ctx context.Context) (string, error)
}

// LoadConfig reads the configuration document named by SECUREID_CONFIG.
func LoadConfig() (*Config, error) {
	return config.FromEnv()
}

// ParseConfig reads a YAML or JSON configuration document.
func ParseConfig(data []byte) (*Config, error) {
	return config.Parse(data)
}

func NewSession(opts ...session.Option) *TokenSession {
	return session.New(opts...)
}

// BuildDocumentVerificationRequest loads the images named by info from the
// local filesystem.
func BuildDocumentVerificationRequest(ctx context.Context, info IDDocumentInfo) (*VerifyIdentityDocumentInput, error) {
	return document.BuildDocumentVerificationRequest(ctx, document.FileLoader{}, info)
}

// Client is the identity verification client. It is safe for concurrent use.
type Client struct {
	*service.Service
	redis *redis.Client
}

type options struct {
	logger     *slog.Logger
	tracer     tracer.Tracer
	registerer prometheus.Registerer
	httpClient graphql.HTTPDoer
	redis      goredis.UniversalClient
	userAgent  string
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithTracer(t Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// WithOpenTelemetry traces operations with the global OpenTelemetry provider.
func WithOpenTelemetry() Option {
	return func(o *options) {
		o.tracer = tracer.NewOTel()
	}
}

// WithRegisterer registers client metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

func WithHTTPClient(doer graphql.HTTPDoer) Option {
	return func(o *options) {
		o.httpClient = doer
	}
}

// WithRedisClient supplies the client for the redis cache backend instead of
// connecting with the redis configuration set.
func WithRedisClient(client goredis.UniversalClient) Option {
	return func(o *options) {
		o.redis = client
	}
}

func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// New builds a client. It fails with CodeConfigurationSetNotFound when cfg has
// no identityVerificationService set.
func New(ctx context.Context, cfg *Config, sess SessionProvider, opts ...Option) (*Client, error) {
	o := options{userAgent: "secureid-go/" + Version}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.tracer == nil {
		o.tracer = tracer.NewNoop()
	}

	if _, err := cfg.IdentityVerificationService(); err != nil {
		return nil, err
	}
	api, err := cfg.APIService()
	if err != nil {
		return nil, err
	}

	client := &Client{}
	store, err := client.cacheStore(ctx, cfg, o)
	if err != nil {
		return nil, err
	}

	transport := graphql.NewClient(api.APIURL,
		graphql.WithHTTPClient(o.httpClient),
		graphql.WithTokenProvider(sess),
		graphql.WithCache(store),
		graphql.WithUserAgent(o.userAgent),
		graphql.WithLogger(o.logger),
		graphql.WithTracer(o.tracer),
		graphql.WithMetrics(graphql.NewMetrics(o.registerer)),
	)
	client.Service = service.New(apiclient.New(transport), sess,
		service.WithLogger(o.logger),
		service.WithTracer(o.tracer),
		service.WithMetrics(metrics.New(o.registerer)),
	)
	return client, nil
}

func (c *Client) cacheStore(ctx context.Context, cfg *Config, o options) (graphql.Store, error) {
	cache, err := cfg.Cache()
	if err != nil {
		return nil, err
	}
	if cache.Backend != config.CacheBackendRedis {
		return graphql.NewMemoryStore(cache.TTL), nil
	}

	rdb := o.redis
	if rdb == nil {
		redisCfg, err := cfg.Redis()
		if err != nil {
			return nil, err
		}
		if redisCfg.URL == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "cache backend redis requires redis.url")
		}
		c.redis, err = redis.New(ctx, redisCfg, redis.NewPoolMetrics(o.registerer))
		if err != nil {
			return nil, err
		}
		rdb = c.redis.Client
	}
	return graphql.NewResilientStore(
		graphql.NewRedisStore(rdb, cache.Prefix, cache.TTL),
		graphql.NewMemoryStore(cache.TTL),
		o.logger,
	), nil
}

// Close records the final Redis pool statistics and releases the connection
// the client opened, if any.
func (c *Client) Close() error {
	if c.redis == nil {
		return nil
	}
	c.redis.RecordPoolStats()
	return c.redis.Close()
}
