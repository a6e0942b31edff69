// Package core provides a small, stable facade over piiguard's internal
// detection engine for external integrations. It deliberately re-exports a
// narrow API surface so other programs can depend on a stable import path
// without reaching into internal implementation packages.
//
// Example:
//
//	spans, err := core.Detect(ctx, "Email: test@example.com", core.DefaultConfig())
//	if err != nil { /* handle */ }
//	fmt.Println(core.Redact("Email: test@example.com", spans))
package core
