package extraction

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/cert-roadmap/internal/annotate"
	"github.com/jonathan/cert-roadmap/internal/types"
	"github.com/jonathan/cert-roadmap/internal/vocabulary"
	"golang.org/x/sync/errgroup"
)

// BuildRoleProfile annotates every description and counts exact token and bigram
// skill occurrences. Descriptions are annotated in parallel but accumulated in input
// order, so context lists are deterministic. An empty batch yields an empty profile.
func (e *Extractor) BuildRoleProfile(ctx context.Context, descriptions []string) (*types.RoleProfile, error) {
	annotations := make([]*annotate.Annotation, len(descriptions))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, desc := range descriptions {
		if strings.TrimSpace(desc) == "" {
			continue
		}
		g.Go(func() error {
			ann, err := e.annotator.Annotate(gCtx, desc)
			if err != nil {
				return fmt.Errorf("failed to annotate description %d: %w", i, err)
			}
			annotations[i] = ann
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ProfileFromAnnotations(e.vocab, annotations), nil
}

// ProfileFromAnnotations accumulates a profile over anns in order. Nil entries are skipped.
func ProfileFromAnnotations(vocab *vocabulary.Vocabulary, anns []*annotate.Annotation) *types.RoleProfile {
	profile := types.NewRoleProfile()
	for _, ann := range anns {
		if ann == nil {
			continue
		}
		addOccurrences(profile, vocab, ann)
	}
	return profile
}

// addOccurrences records the single-token match at each index before the bigram starting
// there. The context snippet keeps the original casing.
func addOccurrences(profile *types.RoleProfile, vocab *vocabulary.Vocabulary, ann *annotate.Annotation) {
	tokens := ann.Tokens
	for i, tok := range tokens {
		key := vocabulary.Normalize(tok.Text)
		if vocab.Accepts(key) {
			profile.Record(key, ann.Window(i, windowBefore, windowAfter))
		}
		if i+1 < len(tokens) {
			bigram := bigramKey(tok, tokens[i+1])
			if vocab.Accepts(bigram) {
				profile.Record(bigram, ann.Window(i, windowBefore, windowAfter))
			}
		}
	}
}
