package mcp

import (
	"context"
	"testing"

	producerpal "github.com/adamjmurray/producer-pal"
	"github.com/adamjmurray/producer-pal/pkg/adapters/memory"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *memory.Set) {
	t.Helper()
	set := memory.NewSet()
	set.AddScene("Scene 1")
	set.AddTrack("Drums")
	set.AddLocator("Chorus", 32)

	eng, err := producerpal.New(set.Client())
	require.NoError(t, err)
	return NewServer(eng), set
}

func TestHandleDuplicate_DecodesArguments(t *testing.T) {
	srv, set := newTestServer(t)

	resp, err := srv.handleDuplicate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"type":  "track",
		"id":    set.Tracks[0].ID(),
		"count": float64(2), // JSON numbers arrive as float64
		"name":  "Layer",
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Layer", resp.Results[0].Name)
	assert.Equal(t, "Layer 2", resp.Results[1].Name)
	assert.Len(t, set.Tracks, 3)
}

func TestHandleDuplicate_SingleCopyCollapses(t *testing.T) {
	srv, set := newTestServer(t)

	resp, err := srv.handleDuplicate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"type": "track",
		"id":   set.Tracks[0].ID(),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Result)
	assert.Nil(t, resp.Results)
}

func TestHandleDuplicate_ValidationError(t *testing.T) {
	srv, set := newTestServer(t)

	_, err := srv.handleDuplicate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"type":             "track",
		"id":               set.Tracks[0].ID(),
		"arrangementStart": "5|1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate failed")
}

func TestHandleDeleteLocator(t *testing.T) {
	srv, set := newTestServer(t)
	set.AddLocator("Chorus", 64)

	resp, err := srv.handleDeleteLocator(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"name": "Chorus",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Deleted)
	assert.Empty(t, set.CuePoints)
}
