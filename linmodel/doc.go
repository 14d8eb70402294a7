// Package linmodel defines the fitted-model contract the estimators consume
// and provides a QR-based ordinary-least-squares reference implementation.
//
// The estimators in vcov/ and boot/ never fit models themselves; they read a
// fitted Model (coefficients, rank, design matrix, residuals, omitted-row
// bookkeeping) and, for the bootstrap, ask it to refit on resampled data.
// Any regression backend can plug in by implementing Model; Fit and FitNA
// cover the common least-squares case and are what the package's own tests
// run against.
//
// Row omission follows the normalized retained-row convention: FitNA drops
// rows containing NaN before fitting, and Omitted reports the original-row
// indices it dropped. How the caller decided to drop rows (missing data,
// exclusion rules) never reaches this package.
package linmodel
