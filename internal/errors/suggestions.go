package errors

import (
	"fmt"
	"strings"
)

// ErrorSuggestion represents a suggestion for fixing an error
type ErrorSuggestion struct {
	Title       string
	Description string
	Example     string
}

var suggestionsByCode = map[string][]ErrorSuggestion{
	ErrCodeEmptySegment: {{
		Title:       "Remove empty segments",
		Description: "Templates cannot contain '//' or end with '/', and values cannot be empty",
	}},
	ErrCodeTraversal: {{
		Title:       "Avoid relative navigation",
		Description: "Segments cannot be '.' or '..'; every path stays under the project root",
	}},
	ErrCodeIllegalCharacter: {{
		Title:       "Use portable characters",
		Description: `Use '/' only between template segments and avoid <>:"\|?*, control characters and trailing dots or spaces`,
		Example:     "saves/slot_1",
	}},
	ErrCodeReservedName: {{
		Title:       "Rename reserved device names",
		Description: "CON, PRN, AUX, NUL, COM1-9 and LPT1-9 are reserved on Windows, with or without an extension",
		Example:     "console.log instead of con.log",
	}},
	ErrCodeSegmentTooLong: {{
		Title:       "Shorten the segment",
		Description: "Each segment is limited to 255 bytes",
	}},
	ErrCodeHomeRelative: {{
		Title:       "Drop the leading '~'",
		Description: "Templates are relative to the project root, not the home directory",
	}},
	ErrCodeAbsoluteTemplate: {{
		Title:       "Make the template relative",
		Description: "Templates are joined to the project root; drop the leading '/'",
		Example:     "config/settings.ini",
	}},
	ErrCodeMalformedPlaceholder: {
		{
			Title:       "Check placeholder syntax",
			Description: "Placeholders look like {name} with letters, digits and '_'",
			Example:     "cache/levels/{level_id}.map",
		},
		{
			Title:       "Remove literal braces",
			Description: "Braces cannot be escaped and may only delimit placeholders",
		},
	},
	ErrCodeDuplicatePlaceholder: {{
		Title:       "Use each placeholder once",
		Description: "A template may reference a placeholder name only once",
	}},
	ErrCodeMissingPlaceholderVal: {{
		Title:       "Supply every placeholder",
		Description: "Pass a value for each placeholder in the template",
		Example:     "pathreg resolve LevelData id=dungeon_01",
	}},
	ErrCodeEmptyID: {{
		Title: "Give the path an identifier",
	}},
	ErrCodeDuplicateID: {{
		Title:       "Use unique identifiers",
		Description: "Each identifier may be registered once; the first template is kept",
	}},
	ErrCodeUnknownID: {{
		Title:       "List registered paths",
		Description: "Check the identifier against the registered paths",
		Example:     "pathreg list",
	}},
	ErrCodeNotStatic: {{
		Title:       "Resolve with values",
		Description: "Templates with placeholders must be resolved with values",
	}},
	ErrCodeInvalidBase: {{
		Title:       "Use an absolute base directory",
		Description: "The base directory must be absolute and cannot be the filesystem root",
	}},
	ErrCodeOverridesDisabled: {{
		Title:       "Enable debug mode",
		Description: "Overrides are only accepted in debug mode",
		Example:     "pathreg --mode debug list",
	}},
}

// SuggestionsFor returns the suggestions for the code of err, or nil.
func SuggestionsFor(err error) []ErrorSuggestion {
	return suggestionsByCode[CodeOf(err)]
}

// SuggestionTitles returns the titles and descriptions of the suggestions
// for err as single lines.
func SuggestionTitles(err error) []string {
	suggestions := SuggestionsFor(err)
	if len(suggestions) == 0 {
		return nil
	}

	lines := make([]string, len(suggestions))
	for i, s := range suggestions {
		lines[i] = s.Title
		if s.Description != "" {
			lines[i] += ": " + s.Description
		}
	}
	return lines
}

// FormatSuggestions formats suggestions for display
func FormatSuggestions(title string, suggestions []ErrorSuggestion) string {
	if len(suggestions) == 0 {
		return title
	}

	var output strings.Builder
	output.WriteString(title + "\n\n")
	output.WriteString("Suggestions:\n")

	for i, suggestion := range suggestions {
		output.WriteString(fmt.Sprintf("  %d. %s\n", i+1, suggestion.Title))
		if suggestion.Description != "" {
			output.WriteString(fmt.Sprintf("     %s\n", suggestion.Description))
		}
		if suggestion.Example != "" {
			output.WriteString(fmt.Sprintf("     Example: %s\n", suggestion.Example))
		}
	}

	return strings.TrimRight(output.String(), "\n")
}

// EnhancedError wraps an error with suggestions
type EnhancedError struct {
	OriginalError error
	Suggestions   []ErrorSuggestion
}

// Error implements the error interface
func (e *EnhancedError) Error() string {
	return FormatSuggestions(e.OriginalError.Error(), e.Suggestions)
}

// Unwrap returns the original error
func (e *EnhancedError) Unwrap() error {
	return e.OriginalError
}

// Enhance attaches the suggestions for err's code. Errors without
// suggestions, and nil, are returned unchanged.
func Enhance(err error) error {
	if err == nil {
		return nil
	}
	suggestions := SuggestionsFor(err)
	if len(suggestions) == 0 {
		return err
	}
	return &EnhancedError{OriginalError: err, Suggestions: suggestions}
}
