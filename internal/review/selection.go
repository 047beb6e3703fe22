// Package review dispatches approve and reject decisions on submissions.
package review

import (
	"fmt"
	"strings"

	backendmodel "github.com/communityhours/hours-dashboard/internal/backend/model"
)

// SelectableIDs returns the ids of the user's submissions awaiting a decision,
// in backend order
func SelectableIDs(user backendmodel.User) []string {
	ids := make([]string, 0, len(user.Submissions))
	for _, s := range user.Submissions {
		if s.CanMakeDecision() {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// NewSelection validates requested ids against the user's selectable
// submissions. Duplicates are dropped and the request order is kept.
func NewSelection(user backendmodel.User, requested []string) ([]string, error) {
	selectable := make(map[string]bool)
	for _, id := range SelectableIDs(user) {
		selectable[id] = true
	}

	seen := make(map[string]bool, len(requested))
	selection := make([]string, 0, len(requested))
	var rejected []string
	for _, id := range requested {
		if seen[id] {
			continue
		}
		seen[id] = true
		if !selectable[id] {
			rejected = append(rejected, id)
			continue
		}
		selection = append(selection, id)
	}

	if len(rejected) > 0 {
		return nil, fmt.Errorf("submissions not awaiting a decision for user %s: %s",
			user.ID, strings.Join(rejected, ", "))
	}
	return selection, nil
}

// normalizeReason trims the reason and drops it when nothing is left
func normalizeReason(reason string) *string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil
	}
	return &reason
}
