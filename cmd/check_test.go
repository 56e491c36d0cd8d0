package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArchiveName(t *testing.T) {
	require.Equal(t, "order_001__ok", archiveName("orders/order_001.json", "demo/test_001.jpg", "ok", false))
	require.Equal(t, "order_001__missing_sauce__test_001", archiveName("orders/order_001.json", "demo/test_001.jpg", "missing_sauce", true))
}

func TestValidateScenario(t *testing.T) {
	for _, s := range []string{"", "ok", "missing_item", "missing_sauce"} {
		require.NoError(t, validateScenario(s), s)
	}

	err := validateScenario("missing_fries")
	require.ErrorContains(t, err, "unknown scenario")
	require.ErrorContains(t, err, "missing_sauce")
}

func TestRunCheck_RejectsUnknownScenario(t *testing.T) {
	scenario = "nonsense"
	t.Cleanup(func() { scenario = "" })

	err := runCheck(checkCmd, nil)
	require.ErrorContains(t, err, "unknown scenario")
}
