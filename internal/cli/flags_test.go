package cli

import (
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGranularityValue(t *testing.T) {
	var g granularityValue
	assert.Equal(t, "", g.String())
	assert.Equal(t, "granularities", g.Type())

	require.NoError(t, g.Set("d,month"))
	assert.True(t, g.changed)
	assert.True(t, g.value.Has(domain.GranularityDay))
	assert.True(t, g.value.Has(domain.GranularityMonth))
	assert.False(t, g.value.Has(domain.GranularityYear))
	assert.Equal(t, "month,day", g.String())

	assert.Error(t, g.Set("hours"))
}
