package artifact

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"purchase-intent-service/internal/core/domain"
	"purchase-intent-service/internal/core/ports/output"
)

// scorerKeys is the priority order of conventional key names a scoring
// pipeline may be stored under inside an artifact document.
var scorerKeys = []string{"model", "pipeline", "clf", "estimator", "classifier"}

const thresholdKey = "best_threshold"

// Store loads a JSON scoring artifact from a fixed path and caches it for
// the process lifetime. The file is read at most once; the mutex makes
// concurrent first loads safe, and after the first load the cache is
// read-only.
type Store struct {
	path string

	mu     sync.Mutex
	cached *domain.Artifact
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

var _ ports.ArtifactLoader = (*Store)(nil)

// Load reads, validates, and caches the artifact. Repeated calls return the
// identical artifact.
func (s *Store) Load(ctx context.Context) (*domain.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return s.cached, nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, err
	}

	art, err := decodeArtifact(raw)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"path":          s.path,
		"has_threshold": art.HasThreshold,
	}).Info("artifact loaded")

	s.cached = art
	return art, nil
}

// decodeArtifact resolves the scoring pipeline inside an artifact document.
// Resolution order: the document itself as a pipeline, then the conventional
// key names in priority order, then every remaining key in sorted order.
func decodeArtifact(raw []byte) (*domain.Artifact, error) {
	if pipe, ok := decodePipeline(raw); ok {
		return &domain.Artifact{Scorer: pipe, Meta: map[string]any{}}, nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, domain.ErrInvalidArtifactFormat
	}

	scorerKey, pipe := resolveScorer(doc)
	if pipe == nil {
		return nil, domain.ErrInvalidArtifactFormat
	}

	art := &domain.Artifact{Scorer: pipe, Meta: make(map[string]any)}

	if rawThr, ok := doc[thresholdKey]; ok {
		var thr float64
		if err := json.Unmarshal(rawThr, &thr); err != nil {
			return nil, domain.ErrInvalidArtifactFormat
		}
		if thr < 0 || thr > 1 {
			return nil, domain.ErrInvalidThreshold
		}
		art.BestThreshold = thr
		art.HasThreshold = true
	}

	for k, v := range doc {
		if k == scorerKey || k == thresholdKey {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			continue
		}
		art.Meta[k] = val
	}

	return art, nil
}

func resolveScorer(doc map[string]json.RawMessage) (string, *LogisticPipeline) {
	for _, key := range scorerKeys {
		if raw, ok := doc[key]; ok {
			if pipe, ok := decodePipeline(raw); ok {
				return key, pipe
			}
		}
	}

	// Fall back to scanning every value. Sorted keys keep the scan
	// deterministic.
	rest := make([]string, 0, len(doc))
	for k := range doc {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	for _, key := range rest {
		if pipe, ok := decodePipeline(doc[key]); ok {
			return key, pipe
		}
	}
	return "", nil
}
