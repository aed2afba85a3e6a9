package backoffice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellOpenActivatesExisting(t *testing.T) {
	shell := NewShell(nil)

	shell.Open("payments", "Payments")
	shell.Open("refunds", "Refunds")
	shell.Open("payments", "Payments")

	assert.Len(t, shell.Tabs(), 2)
	assert.Equal(t, "payments", shell.ActiveTab())
}

func TestShellCloseActivatesLeftNeighbour(t *testing.T) {
	shell := NewShell(nil)

	shell.Open("payments", "Payments")
	shell.Open("refunds", "Refunds")
	shell.Open("settlements", "Settlements")

	shell.Close("settlements")
	assert.Equal(t, "refunds", shell.ActiveTab())

	// Closing an inactive tab keeps the active one
	shell.Close("payments")
	assert.Equal(t, "refunds", shell.ActiveTab())

	shell.Close("refunds")
	assert.Equal(t, "", shell.ActiveTab())
	assert.Empty(t, shell.Tabs())
}

func TestShellDetailNavigationUsesCallback(t *testing.T) {
	var feature, id string
	shell := NewShell(func(f, i string) {
		feature, id = f, i
	})

	shell.OpenDetail("transactions", "tx-1")
	assert.Equal(t, "transactions", feature)
	assert.Equal(t, "tx-1", id)
}
