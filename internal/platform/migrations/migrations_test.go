package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_NilDatabaseIsNoop(t *testing.T) {
	assert.NoError(t, Run(nil))
}

func TestSteps_AccountsAndCatalogComeFirst(t *testing.T) {
	steps := Steps()
	assert.Equal(t, "accounts", steps[0].Context)
	assert.Equal(t, "catalog", steps[1].Context)
	for _, step := range steps {
		assert.NotEmpty(t, step.Models, step.Context)
	}
}
