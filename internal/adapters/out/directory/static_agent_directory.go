// Package directory provides a configuration-backed agent directory. The set
// of agents and admins is fixed at startup; a real deployment would replace
// this with a call into an identity service.
package directory

import (
	"context"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
)

// StaticAgentDirectory answers role questions from in-memory sets loaded at
// construction. Safe for concurrent use; the sets are never mutated.
type StaticAgentDirectory struct {
	agents map[kernel.UUID]struct{}
	staff  []kernel.UUID
}

// NewStaticAgentDirectory creates a directory from the known agent and admin
// identifiers. Staff is the union of both groups, agents first.
func NewStaticAgentDirectory(agentIDs, adminIDs []kernel.UUID) *StaticAgentDirectory {
	agents := make(map[kernel.UUID]struct{}, len(agentIDs))
	staff := make([]kernel.UUID, 0, len(agentIDs)+len(adminIDs))

	for _, id := range agentIDs {
		if _, ok := agents[id]; ok {
			continue
		}
		agents[id] = struct{}{}
		staff = append(staff, id)
	}

	seen := make(map[kernel.UUID]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		if _, ok := agents[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		staff = append(staff, id)
	}

	return &StaticAgentDirectory{agents: agents, staff: staff}
}

// IsAgent reports whether the user holds the agent role.
func (d *StaticAgentDirectory) IsAgent(_ context.Context, userID kernel.UUID) (bool, error) {
	_, ok := d.agents[userID]
	return ok, nil
}

// ListStaff returns every agent and admin known to the directory.
func (d *StaticAgentDirectory) ListStaff(_ context.Context) ([]kernel.UUID, error) {
	staff := make([]kernel.UUID, len(d.staff))
	copy(staff, d.staff)
	return staff, nil
}

// ParseIDList parses a comma-separated list of UUIDs, as found in
// configuration values. Blank entries are skipped.
func ParseIDList(s string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := kernel.UUIDFromString(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
