package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduardo/stackforge/internal/domain"
)

func TestUndirectedFrontends(t *testing.T) {
	sels := []domain.FrontendSelection{
		{Frontend: domain.FrontendReact},
		{Frontend: domain.FrontendSvelte, Directory: "admin"},
		{Frontend: domain.FrontendVue},
	}
	assert.Equal(t, []int{0, 2}, undirectedFrontends(sels))

	assert.Empty(t, undirectedFrontends([]domain.FrontendSelection{
		{Frontend: domain.FrontendReact, Directory: "app"},
	}))
}
