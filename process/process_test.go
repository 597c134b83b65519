package process_test

import (
	"encoding/json"
	"testing"

	"github.com/proclet/go-proccache/process"
	"github.com/stretchr/testify/require"
)

func TestPID(t *testing.T) {
	p1 := process.NewPID()
	p2 := process.NewPID()
	require.NotEqual(t, p1, p2)

	parsed, err := process.ParsePID(p1.String())
	require.NoError(t, err)
	require.Equal(t, p1, parsed)

	_, err = process.ParsePID("not-a-pid")
	require.ErrorContains(t, err, "invalid pid")
}

func TestInfoJSON(t *testing.T) {
	info := process.Info{
		PID:       process.NewPID(),
		Name:      "counter-process",
		Node:      "node-1",
		StartedAt: "2023-06-28T12:21:06Z",
	}

	data, err := json.Marshal(&info)
	require.NoError(t, err)

	var got process.Info
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, info, got)

	// Optional fields are omitted when empty.
	data, err = json.Marshal(&process.Info{PID: info.PID})
	require.NoError(t, err)
	require.NotContains(t, string(data), "Node")
	require.NotContains(t, string(data), "StartedAt")
}
