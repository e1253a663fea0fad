package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrItemNotFound:        "The item may have been deleted. Use 'groclist list' to refresh your view.",
	ErrReminderNotFound:    "Use 'groclist remind list' to see scheduled reminders.",
	ErrChannelNotFound:     "Use 'groclist channel list' to see configured alert channels.",
	ErrNameRequired:        "Provide a non-empty item name, e.g. 'groclist add Milk 2 3.50'.",
	ErrInvalidQuantity:     "Quantity must be a positive whole number.",
	ErrInvalidPrice:        "Price must be a non-negative number like 3.50.",
	ErrInvalidScheduleTime: "Pick a time in the future, e.g. '+1h', 'tomorrow', or 'weekend'.",
	ErrInvalidURL:          "Provide a valid URL starting with https:// (or http:// for localhost).",
	ErrDaemonNotRunning:    "Start it with 'groclist daemon start'. Reminders only fire while the daemon runs.",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check exact match first
	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	// Check if it's a UserError with a suggestion
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	return ""
}

// GetCategorySuggestion returns a generic suggestion based on error category.
func GetCategorySuggestion(err error) string {
	if IsUserError(err) {
		return "Check your input and try again. Use --help for usage information."
	}
	if IsSystemError(err) {
		return "This is a system error. Check system resources and try again."
	}
	return ""
}
