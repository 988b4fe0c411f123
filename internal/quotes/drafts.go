package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/angelmondragon/blindquote/pkg/errors"
	"github.com/angelmondragon/blindquote/pkg/redis"
)

const (
	lockTTL     = 30 * time.Second
	sequenceTTL = 48 * time.Hour
	dayLayout   = "20060102"
)

// DraftBackend is the key-value surface the draft cache needs.
type DraftBackend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, token string) (bool, error)
	Del(ctx context.Context, keys ...string) error
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	DraftKey(quoteID string) string
	LockKey(quoteID string) string
	SequenceKey(day string) string
}

// DraftStore caches workspaces in redis and guards concurrent edits.
type DraftStore struct {
	backend DraftBackend
	ttl     time.Duration
}

func NewDraftStore(backend DraftBackend, ttl time.Duration) *DraftStore {
	return &DraftStore{backend: backend, ttl: ttl}
}

// Load returns the cached workspace; ok is false on a cache miss.
func (d *DraftStore) Load(ctx context.Context, id uuid.UUID) (*Workspace, bool, error) {
	raw, err := d.backend.Get(ctx, d.backend.DraftKey(id.String()))
	if err != nil {
		if redis.IsNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var ws Workspace
	if err := json.Unmarshal([]byte(raw), &ws); err != nil {
		// a corrupt draft is dropped and the database copy wins
		_ = d.backend.Del(ctx, d.backend.DraftKey(id.String()))
		return nil, false, nil
	}
	return &ws, true, nil
}

func (d *DraftStore) Save(ctx context.Context, ws *Workspace) error {
	raw, err := json.Marshal(ws)
	if err != nil {
		return err
	}
	return d.backend.Set(ctx, d.backend.DraftKey(ws.ID.String()), string(raw), d.ttl)
}

func (d *DraftStore) Delete(ctx context.Context, id uuid.UUID) error {
	return d.backend.Del(ctx, d.backend.DraftKey(id.String()))
}

// Lock takes the edit lock for a quote. The returned func releases it.
func (d *DraftStore) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	key := d.backend.LockKey(id.String())
	token := uuid.NewString()
	ok, err := d.backend.SetNX(ctx, key, token, lockTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire quote lock")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "quote is being edited, retry shortly")
	}
	return func() { _, _ = d.backend.ReleaseLock(context.WithoutCancel(ctx), key, token) }, nil
}

// NextQuoteNumber issues RB-<yyyymmdd>-<nnn> from a per-day counter.
func (d *DraftStore) NextQuoteNumber(ctx context.Context, now time.Time) (string, error) {
	day := now.Format(dayLayout)
	n, err := d.backend.IncrWithTTL(ctx, d.backend.SequenceKey(day), sequenceTTL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("RB-%s-%03d", day, n), nil
}
