// Package config provides configuration types and defaults for clipforge.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidDuration indicates a broken min/max clip duration pair.
	ErrInvalidDuration = errors.New("invalid clip duration bounds")

	// ErrInvalidTargetSize indicates an unusable reframe target size.
	ErrInvalidTargetSize = errors.New("invalid reframe target size")

	// ErrInvalidThreshold indicates a motion threshold or amplification
	// factor outside its valid range.
	ErrInvalidThreshold = errors.New("invalid motion scoring parameter")

	// ErrInvalidSampling indicates an unusable analysis sampling setup.
	ErrInvalidSampling = errors.New("invalid analysis sampling parameter")

	// ErrInvalidTimeout indicates a non-positive external call deadline.
	ErrInvalidTimeout = errors.New("invalid timeout")
)
