package metricskey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	names := map[string]bool{}
	for _, m := range Metrics {
		assert.NotEmpty(t, m.Help)
		assert.Equal(t, []string{"alg"}, m.RequiredTags)
		assert.False(t, names[m.Name], "duplicate metric: %s", m.Name)
		names[m.Name] = true
	}
	assert.Len(t, names, 2)
}
