// Package oaserrors provides structured error types for the oasbundle library.
//
// Import path: github.com/erraggy/oasbundle/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between the failures a bundling run can hit and
// decide which of them to tolerate.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON parsing failures; always fatal
//   - [ReferenceError]: missing files, missing pointers, circular and unsupported refs
//   - [ResourceLimitError]: resource exhaustion (ref depth, document count, file size)
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrFileNotFound]: Matches [ReferenceError] with IsMissingFile=true
//   - [ErrPointerNotFound]: Matches [ReferenceError] with IsPointerNotFound=true
//   - [ErrUnsupportedScheme]: Matches [ReferenceError] with IsUnsupportedScheme=true
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
// In strict mode the bundler returns the first fatal diagnostic as a
// [ReferenceError]:
//
//	result, err := bundler.BundleWithOptions(
//	    bundler.WithEntryFile("api/main.yaml"),
//	    bundler.WithMode(bundler.ModeStrict),
//	)
//	if errors.Is(err, oaserrors.ErrCircularReference) {
//	    // A $ref chain loops back on itself
//	}
//
// Extract error details with errors.As():
//
//	var refErr *oaserrors.ReferenceError
//	if errors.As(err, &refErr) && refErr.IsMissingFile {
//	    fmt.Printf("missing file for %s: %s\n", refErr.Ref, refErr.Target)
//	}
//
// # Error Chaining
//
// All error types support error chaining via the Cause field and Unwrap() method:
//
//	var refErr *oaserrors.ReferenceError
//	if errors.As(err, &refErr) {
//	    if errors.Is(refErr.Cause, os.ErrNotExist) {
//	        // The reference file doesn't exist
//	    }
//	}
package oaserrors
