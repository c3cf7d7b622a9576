// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// The pipeline degrades at the narrowest possible scope: a section failure
// is absorbed into the article, an article failure skips the paper, a
// source failure yields an empty candidate set. Only a corrupt corpus file
// aborts a step. These types let callers branch on that scope.

// SourceError indicates the paper source was unreachable or returned
// malformed data. The run continues with zero candidates.
type SourceError struct {
	Cause error
}

func (e *SourceError) Error() string { return fmt.Sprintf("paper source: %v", e.Cause) }
func (e *SourceError) Unwrap() error { return e.Cause }

// ServiceError indicates a single text-generation call failed. The affected
// section receives a placeholder; the article is still produced.
type ServiceError struct {
	Template string
	Cause    error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("generation call %q: %v", e.Template, e.Cause)
}
func (e *ServiceError) Unwrap() error { return e.Cause }

// GenerationError indicates article assembly could not complete at all,
// e.g. the paper record is missing required fields. The paper is skipped.
type GenerationError struct {
	PaperID string
	Cause   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating article for %s: %v", e.PaperID, e.Cause)
}
func (e *GenerationError) Unwrap() error { return e.Cause }

// IntegrationError indicates the corpus could not be updated. The existing
// corpus file is left untouched, preserving the last-known-good state.
type IntegrationError struct {
	Cause error
}

func (e *IntegrationError) Error() string { return fmt.Sprintf("corpus integration: %v", e.Cause) }
func (e *IntegrationError) Unwrap() error { return e.Cause }
