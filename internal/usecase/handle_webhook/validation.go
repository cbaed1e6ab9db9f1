package handle_webhook

import (
	"fmt"
	"strings"
)

// invalidatingPrefixes события, меняющие данные снапшота
var invalidatingPrefixes = []string{
	"reservation.",
	"shift.",
	"program.",
	"studio_room.",
}

func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Event) == "" {
		return fmt.Errorf("%w: event is required", ErrInvalidInput)
	}
	for _, id := range req.RoomIDs {
		if id <= 0 {
			return fmt.Errorf("%w: room id must be positive, got %d", ErrInvalidInput, id)
		}
	}
	return nil
}

func invalidates(event string) bool {
	for _, prefix := range invalidatingPrefixes {
		if strings.HasPrefix(event, prefix) {
			return true
		}
	}
	return false
}
