package annotate

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cached memoizes another Annotator by trimmed input text. Entries never expire:
// annotations depend only on the text and the model, both fixed for the process lifetime.
// Callers must treat returned annotations as read-only.
type Cached struct {
	next    Annotator
	entries sync.Map // string -> *Annotation
	group   singleflight.Group
}

// NewCached wraps next with a result cache.
func NewCached(next Annotator) *Cached {
	return &Cached{next: next}
}

// Annotate returns the cached annotation for text or computes it once, sharing the
// in-flight call between concurrent callers. Failures are not cached.
//
// The shared call is detached from the cancellation of whichever caller started it;
// each caller stops waiting when its own ctx is done.
func (c *Cached) Annotate(ctx context.Context, text string) (*Annotation, error) {
	key := strings.TrimSpace(text)
	if v, ok := c.entries.Load(key); ok {
		return v.(*Annotation), nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		ann, err := c.next.Annotate(context.WithoutCancel(ctx), key)
		if err != nil {
			return nil, err
		}
		c.entries.Store(key, ann)
		return ann, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Annotation), nil
	}
}

// Len returns the number of cached entries.
func (c *Cached) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
