package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/levelance"
	"github.com/aretw0/levelance/pkg/domain"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestHandleDecode(t *testing.T) {
	s := NewServer(levelance.New())
	ctx := context.Background()

	resp, err := s.handleDecode(ctx, mcp.CallToolRequest{}, map[string]interface{}{"input": "LPSAAA.BBBLP"})
	require.NoError(t, err)
	assert.Equal(t, "3.0", resp.Output)
	assert.Equal(t, []int{3, 0}, resp.Digits)
	assert.Equal(t, 11, resp.TotalLength)

	_, err = s.handleDecode(ctx, mcp.CallToolRequest{}, map[string]interface{}{"input": "LPSAALP"})
	assert.ErrorIs(t, err, domain.ErrBadGroupLength)
}

func TestHandleExplain(t *testing.T) {
	s := NewServer(levelance.New())
	ctx := context.Background()

	res, err := s.handleExplain(ctx, callRequest(map[string]any{"input": "LPSWXBLP"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	var traces []domain.Trace
	require.NoError(t, json.Unmarshal([]byte(text.Text), &traces))
	require.Len(t, traces, 1)
	assert.Equal(t, 7, traces[0].Digit)

	res, err = s.handleExplain(ctx, callRequest(map[string]any{"input": "LPXAAALP"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleExplain(ctx, callRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestReadSymbols(t *testing.T) {
	s := NewServer(levelance.New())

	contents, err := s.readSymbols(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, SymbolsURI, text.URI)

	var rules []domain.Rule
	require.NoError(t, json.Unmarshal([]byte(text.Text), &rules))
	assert.Len(t, rules, 26)
}
