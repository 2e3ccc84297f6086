package errors

import (
	"errors"
	"fmt"
	"testing"
)

func BenchmarkPathError_Error(b *testing.B) {
	err := NewValidationError(ErrCodeReservedName, "segment is a reserved device name").
		WithID("LevelData").
		WithTemplate("cache/{id}.map").
		WithSegment(1, "con.map")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = err.Error()
	}
}

func BenchmarkCodeOf_Wrapped(b *testing.B) {
	var err error = ErrUnknownIDFor("SaveDir")
	for i := 0; i < 5; i++ {
		err = fmt.Errorf("layer %d: %w", i, err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CodeOf(err)
	}
}

func BenchmarkIs(b *testing.B) {
	err := fmt.Errorf("resolve: %w", NewValidationError(ErrCodeTraversal, "relative navigation is not allowed"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = errors.Is(err, ErrTraversal)
	}
}

func BenchmarkSuggestionsFor(b *testing.B) {
	err := ErrMissingValueFor("id")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = SuggestionsFor(err)
	}
}
