package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/justask/internal/core/demo"
	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/templates"
)

func TestEditsResetRunningDemo(t *testing.T) {
	tpl, _ := templates.Default().Get("know-my-audience")
	s := NewSession(FromTemplate(tpl))

	require.NoError(t, s.Demo.Start())
	require.NoError(t, s.Demo.Answer(1, domain.Text("18-24")))
	require.NoError(t, s.Demo.Next())

	require.NoError(t, s.Draft.AddOption(1, "65+"))

	assert.Equal(t, demo.StateNotStarted, s.Demo.State())
	assert.Empty(t, s.Demo.Answers())
}

func TestFailedEditKeepsDemo(t *testing.T) {
	tpl, _ := templates.Default().Get("know-my-audience")
	s := NewSession(FromTemplate(tpl))

	require.NoError(t, s.Demo.Start())
	require.NoError(t, s.Demo.Answer(1, domain.Text("18-24")))

	assert.Error(t, s.Draft.DeleteQuestion(99))
	assert.Equal(t, demo.StateInProgress, s.Demo.State())
	assert.Len(t, s.Demo.Answers(), 1)
}
