package links

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"
)

// Verifier decides whether a presented (media id, code) pair may be served.
type Verifier struct {
	store Store
	now   Clock
}

func NewVerifier(store Store) *Verifier {
	return &Verifier{store: store, now: time.Now}
}

// WithClock replaces the verifier's time source.
func (v *Verifier) WithClock(now Clock) *Verifier {
	v.now = now
	return v
}

// Verify returns the record when the code matches and has not expired.
// Unknown ids, wrong codes and expired records all yield ErrAccessDenied;
// store failures are returned unchanged.
func (v *Verifier) Verify(ctx context.Context, mediaID int64, code string) (Record, error) {
	rec, err := v.store.Get(ctx, mediaID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return Record{}, ErrAccessDenied
		}
		return Record{}, err
	}
	codeOK := subtle.ConstantTimeCompare([]byte(code), []byte(rec.Code)) == 1
	if !codeOK || code == "" || rec.Expired(v.now()) {
		return Record{}, ErrAccessDenied
	}
	return rec, nil
}
