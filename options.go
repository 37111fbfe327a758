// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package dom3mapgen

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	defaultEps = 1e-12
)

type Options struct {
	Logger *zap.Logger
	Eps    float64
}

type Option func(*Options) error

func WithLogger(l *zap.Logger) Option {
	return func(o *Options) error {
		if l == nil {
			return errors.New("WithLogger: logger must not be nil")
		}
		o.Logger = l
		return nil
	}
}

// WithEps sets the tolerance of the Delaunay hull test.
func WithEps(eps float64) Option {
	return func(o *Options) error {
		if eps <= 0 || eps >= 1 {
			return fmt.Errorf("WithEps: eps must be in (0, 1), got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}
