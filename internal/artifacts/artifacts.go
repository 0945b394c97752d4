// Package artifacts locates and loads the exported model artifacts.
//
// Four artifacts are resolved against an ordered list of candidate base
// directories; the first match per artifact wins. Only the classifier is
// required. The scaler, feature-name list, and metadata each degrade to a
// documented synthesized default so the service can still score with a
// partial export.
package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cardwatch/fraudscore/internal/model"
)

// Fixed artifact filenames, as written by the training pipeline export step.
const (
	ClassifierFile = "fraud_model.json"
	ScalerFile     = "amount_scaler.json"
	FeaturesFile   = "feature_names.json"
	MetadataFile   = "model_metadata.json"
)

// ErrClassifierNotFound is returned when the required classifier artifact
// is absent from every candidate directory.
var ErrClassifierNotFound = errors.New("classifier artifact not found in any candidate directory")

// Bundle is the immutable-after-load set of model artifacts. It is
// populated once at startup and read-only afterwards.
type Bundle struct {
	Classifier   *model.Classifier
	Scaler       *model.StandardScaler
	FeatureNames []string
	Metadata     *model.Metadata
}

// DefaultFeatureNames returns the canonical feature layout: V1..V28
// followed by the normalized-amount label.
func DefaultFeatureNames() []string {
	names := make([]string, 0, 29)
	for i := 1; i <= 28; i++ {
		names = append(names, fmt.Sprintf("V%d", i))
	}
	return append(names, "Amount_Norm")
}

// Resolver searches an ordered list of base directories for artifacts.
type Resolver struct {
	dirs   []string
	logger *slog.Logger
}

// NewResolver creates a resolver over the given candidate directories.
func NewResolver(dirs []string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{dirs: dirs, logger: logger}
}

// find returns the first existing path for filename across the candidate
// directories.
func (r *Resolver) find(filename string) (string, bool) {
	for _, dir := range r.dirs {
		path := filepath.Join(dir, filename)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Load resolves and loads all artifacts. The classifier is required; the
// remaining artifacts fall back to synthesized defaults with a degraded-mode
// log line. The returned bundle is complete on success.
func (r *Resolver) Load() (*Bundle, error) {
	path, ok := r.find(ClassifierFile)
	if !ok {
		r.logger.Error("classifier artifact missing",
			"file", ClassifierFile,
			"dirs", r.dirs,
		)
		return nil, ErrClassifierNotFound
	}

	clf, err := model.LoadClassifier(path)
	if err != nil {
		return nil, fmt.Errorf("load classifier: %w", err)
	}
	r.logger.Info("classifier loaded",
		"path", path,
		"model_type", clf.ModelType,
		"num_features", clf.NumFeatures,
	)

	b := &Bundle{Classifier: clf}
	b.Scaler = r.loadScaler()
	b.FeatureNames = r.loadFeatureNames(clf.NumFeatures)
	b.Metadata = r.loadMetadata(clf, len(b.FeatureNames))

	return b, nil
}

func (r *Resolver) loadScaler() *model.StandardScaler {
	path, ok := r.find(ScalerFile)
	if ok {
		s, err := model.LoadScaler(path)
		if err == nil {
			r.logger.Info("amount scaler loaded", "path", path)
			return s
		}
		r.logger.Warn("amount scaler artifact unreadable, fitting fallback",
			"path", path,
			"error", err,
		)
	} else {
		r.logger.Warn("amount scaler artifact missing, fitting fallback on reference amounts",
			"file", ScalerFile,
		)
	}
	return model.FitScaler(model.ReferenceAmounts)
}

func (r *Resolver) loadFeatureNames(numFeatures int) []string {
	path, ok := r.find(FeaturesFile)
	if ok {
		names, err := loadStringList(path)
		switch {
		case err != nil:
			r.logger.Warn("feature names artifact unreadable, using defaults",
				"path", path,
				"error", err,
			)
		case len(names) != numFeatures:
			r.logger.Warn("feature names length does not match classifier, using defaults",
				"path", path,
				"got", len(names),
				"want", numFeatures,
			)
		default:
			r.logger.Info("feature names loaded", "path", path, "count", len(names))
			return names
		}
	} else {
		r.logger.Warn("feature names artifact missing, using defaults", "file", FeaturesFile)
	}
	return DefaultFeatureNames()
}

func (r *Resolver) loadMetadata(clf *model.Classifier, numFeatures int) *model.Metadata {
	path, ok := r.find(MetadataFile)
	if ok {
		m, err := model.LoadMetadata(path)
		if err == nil {
			r.logger.Info("model metadata loaded", "path", path, "version", m.Version)
			return m
		}
		r.logger.Warn("model metadata artifact unreadable, using minimal descriptor",
			"path", path,
			"error", err,
		)
	} else {
		r.logger.Warn("model metadata artifact missing, using minimal descriptor",
			"file", MetadataFile,
		)
	}
	return &model.Metadata{
		ModelType:   clf.ModelType,
		Version:     "unknown",
		NumFeatures: numFeatures,
		TrainedAt:   "unavailable",
	}
}

func loadStringList(path string) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the configured artifact search list
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, err
	}
	return names, nil
}
