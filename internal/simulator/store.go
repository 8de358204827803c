package simulator

import (
	"hash/fnv"
	"sync"
	"time"

	"secureid/internal/verification/models"
	"secureid/internal/verification/wire"
)

// record is an owner's verification state as the service keeps it.
type record struct {
	owner           string
	verified        bool
	verifiedAt      time.Time
	method          models.VerificationMethod
	requiredMethod  models.VerificationMethod
	acceptable      []models.DocumentType
	documentStatus  models.DocumentVerificationStatus
	lastAttemptedAt time.Time
	piiAttempted    bool
	failedAttempts  int
}

func newRecord(owner string) *record {
	return &record{
		owner:          owner,
		method:         models.VerificationMethodNone,
		requiredMethod: models.VerificationMethodKnowledgeOfPII,
		acceptable:     []models.DocumentType{},
		documentStatus: models.DocumentVerificationStatusNotRequired,
	}
}

func (r *record) canAttemptAgain(maxAttempts int) bool {
	return !r.verified && r.failedAttempts < maxAttempts
}

func (r *record) toWire(maxAttempts int) *wire.VerifiedIdentity {
	required := string(r.requiredMethod)
	acceptable := make([]string, 0, len(r.acceptable))
	for _, t := range r.acceptable {
		acceptable = append(acceptable, string(t))
	}
	return &wire.VerifiedIdentity{
		Owner:                              r.owner,
		Verified:                           r.verified,
		VerifiedAtEpochMs:                  epochMs(r.verifiedAt),
		VerificationMethod:                 string(r.method),
		CanAttemptVerificationAgain:        r.canAttemptAgain(maxAttempts),
		RequiredVerificationMethod:         &required,
		AcceptableDocumentTypes:            acceptable,
		DocumentVerificationStatus:         string(r.documentStatus),
		VerificationLastAttemptedAtEpochMs: epochMs(r.lastAttemptedAt),
	}
}

// epochMs reports an unset time as 0, as the service does.
func epochMs(t time.Time) *float64 {
	ms := 0.0
	if !t.IsZero() {
		ms = float64(t.UnixMilli())
	}
	return &ms
}

// store keeps records in memory. Updates to one owner are serialized through
// a sharded lock so that concurrent owners rarely contend.
type store struct {
	mu      sync.RWMutex
	records map[string]*record
	shards  [32]sync.Mutex
}

func newStore() *store {
	return &store{records: make(map[string]*record)}
}

func (s *store) shardFor(owner string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(owner))
	return &s.shards[h.Sum32()%uint32(len(s.shards))]
}

// view returns a copy of the owner's wire record, or a fresh one.
func (s *store) view(owner string, maxAttempts int) *wire.VerifiedIdentity {
	s.mu.RLock()
	rec, ok := s.records[owner]
	s.mu.RUnlock()
	if !ok {
		return newRecord(owner).toWire(maxAttempts)
	}

	lock := s.shardFor(owner)
	lock.Lock()
	defer lock.Unlock()
	return rec.toWire(maxAttempts)
}

// update runs fn with exclusive access to the owner's record, creating it on
// first use. fn's changes are kept even when it returns an error.
func (s *store) update(owner string, fn func(rec *record) error) error {
	lock := s.shardFor(owner)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	rec, ok := s.records[owner]
	if !ok {
		rec = newRecord(owner)
		s.records[owner] = rec
	}
	s.mu.Unlock()

	return fn(rec)
}

func (s *store) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
