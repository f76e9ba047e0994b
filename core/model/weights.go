package model

import (
	"encoding/json"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// WeightsVersion is written into every exported ModelWeights.
const WeightsVersion = "1.0"

// ModelWeights is the serialized form of a linear model.
type ModelWeights struct {
	// ModelType names the estimator, e.g. "LinearRegression".
	ModelType string `json:"model_type"`

	// Version guards against reading an incompatible layout.
	Version string `json:"version"`

	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`

	// Features are optional column names, one per coefficient.
	Features []string `json:"features,omitempty"`

	// Hyperparameters used by the fit that produced the weights.
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// Metadata holds training statistics such as sample counts.
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	IsFitted bool `json:"is_fitted"`
}

// ToJSON serializes the weights as indented JSON.
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(mw, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal model weights")
	}
	return data, nil
}

// FromJSON replaces mw with the weights decoded from data.
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return errors.Wrap(err, "unmarshal model weights")
	}
	return nil
}

// Validate checks that the weights are internally consistent.
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", mw.ModelType)
	}
	if mw.Version != WeightsVersion {
		return errors.NewValidationError("version", "unsupported weights version", mw.Version)
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return errors.NewValidationError("coefficients", "unfitted model should not have coefficients", len(mw.Coefficients))
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.NewValidationError("coefficients", "fitted model must have coefficients", 0)
	}
	if len(mw.Features) > 0 && len(mw.Features) != len(mw.Coefficients) {
		return errors.NewValidationError("features", "must name every coefficient", len(mw.Features))
	}
	return nil
}

// Clone returns a deep copy of mw.
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:       mw.ModelType,
		Version:         mw.Version,
		Intercept:       mw.Intercept,
		IsFitted:        mw.IsFitted,
		Coefficients:    append([]float64(nil), mw.Coefficients...),
		Features:        append([]string(nil), mw.Features...),
		Hyperparameters: make(map[string]interface{}, len(mw.Hyperparameters)),
		Metadata:        make(map[string]interface{}, len(mw.Metadata)),
	}
	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}
	for k, v := range mw.Metadata {
		clone.Metadata[k] = v
	}
	return clone
}
