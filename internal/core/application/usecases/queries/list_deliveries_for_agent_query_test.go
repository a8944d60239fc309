package queries_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListDeliveriesForAgentQuery_Valid(t *testing.T) {
	agentID := kernel.NewUUID()

	query, err := queries.NewListDeliveriesForAgentQuery(agentID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, agentID, query.AgentID())
}

func TestNewListDeliveriesForAgentQuery_InvalidAgentID(t *testing.T) {
	_, err := queries.NewListDeliveriesForAgentQuery(kernel.UUID{})

	require.Error(t, err)
}

func TestListDeliveriesForAgentQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListDeliveriesForAgentQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListDeliveriesForAgentQueryIsNotConstructed)
}
