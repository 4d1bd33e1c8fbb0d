package starmap

import "errors"

// ErrNotFitted is returned by Get when a slot has no fitted approximator.
var ErrNotFitted = errors.New("starmap: slot has no fitted approximator")

// ErrUnsupportedMethod is returned when the requested interpolation method
// is not one of linear, nearest or gaussian_process.
var ErrUnsupportedMethod = errors.New("starmap: unsupported interpolation method")

// ErrOriginMismatch is returned at construction when target and UAM share
// different origins.
var ErrOriginMismatch = errors.New("starmap: target origin differs from UAM origin")

// ErrAutoImproveRequiresGaussianProcess is returned by AutoImprove when the
// StaR Map's current method is not gaussian_process.
var ErrAutoImproveRequiresGaussianProcess = errors.New("starmap: auto_improve requires method=gaussian_process")

// ErrAutoImproveRequiresRasterBand is returned by AutoImprove when Target is
// not a dense raster.
var ErrAutoImproveRequiresRasterBand = errors.New("starmap: auto_improve requires a raster band target")
