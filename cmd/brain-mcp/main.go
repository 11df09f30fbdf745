// Command brain-mcp exposes the Castle Verde API as MCP tools over stdio,
// so agent runtimes can look up foods and scan nutrition labels through a
// configured Brain client.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/castleverde/brain"
)

var client *brain.Client

// FoodLookupArgs are the arguments for the food_lookup tool.
type FoodLookupArgs struct {
	Item string `json:"item" jsonschema:"the food item to look up"`
}

// ScanLabelArgs are the arguments for the scan_label tool.
type ScanLabelArgs struct {
	Path string `json:"path" jsonschema:"path to the nutrition label image file"`
}

func foodLookup(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[FoodLookupArgs]) (*mcp.CallToolResultFor[any], error) {
	nutrients, err := client.FoodLookup(ctx, params.Arguments.Item)
	if err != nil {
		return toolError(fmt.Sprintf("food lookup failed: %v", err)), nil
	}
	return toolJSON(nutrients)
}

func scanLabel(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[ScanLabelArgs]) (*mcp.CallToolResultFor[any], error) {
	file, err := os.Open(params.Arguments.Path)
	if err != nil {
		return toolError(fmt.Sprintf("cannot open image: %v", err)), nil
	}
	defer file.Close()

	facts, err := client.ProcessLabel(ctx, filepath.Base(params.Arguments.Path), file)
	if err != nil {
		return toolError(fmt.Sprintf("label scan failed: %v", err)), nil
	}
	return toolJSON(facts)
}

// toolJSON wraps a value as a JSON text result.
func toolJSON(v any) (*mcp.CallToolResultFor[any], error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}

// toolError reports a failed tool call without tearing down the session.
func toolError(message string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to load .env file: %v", err)
	}

	var err error
	client, err = brain.FromEnv()
	if err != nil {
		log.Fatalf("Failed to create brain client: %v", err)
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "castleverde-brain", Version: "0.1.0"}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "food_lookup",
		Description: "Look up the macro nutrients (protein, fat, fiber, carbs, sugar) of a food item",
	}, foodLookup)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "scan_label",
		Description: "Extract structured nutrition facts from a photo of a nutrition label",
	}, scanLabel)

	if err := server.Run(context.Background(), mcp.NewStdioTransport()); err != nil {
		log.Fatalf("MCP server terminated: %v", err)
	}
}
