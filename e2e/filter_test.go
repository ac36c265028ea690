//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFilterKeepsHiddenSelection(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready())

	tf.Select() // web-1

	require.NoError(t, tf.Filter("db"))
	require.True(t, tf.SeePlain("Filter: db"), "Filter prompt should show the query")
	require.True(t, tf.SeePlain("1/4 match • 1 selected"), "Hidden selection is still counted")

	tf.SendEnter()
	tf.Select() // db-1
	require.True(t, tf.SeePlain("2 selected"))

	tf.SendEnter()
	require.Equal(t, 0, tf.Wait(2*time.Second))
	require.True(t, tf.SeePlain("web-1\ndb-1\n"), "Both items are printed in catalog order")
}

func TestFilterEscClears(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready())

	require.NoError(t, tf.Filter("group:staging"))
	require.True(t, tf.SeePlain("1/4 match"))

	tf.SendKeys(KeyEsc)
	require.True(t, tf.SeePlain("4/4 match"), "Esc should clear the filter")

	tf.Quit()
	require.Equal(t, 130, tf.Wait(2*time.Second))
}
