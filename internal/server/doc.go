// Package server implements the MCP (Model Context Protocol) server for the
// squarify tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the squarify and
// color-key transformations through the MCP protocol, so MCP-compatible
// clients can turn rectangular images into square, transparency-keyed PNGs.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_load: Load an image (file path or URL) and get metadata
//   - image_dimensions: Get width and height
//
// Color Operations:
//   - image_sample_color: Get the color at a pixel
//   - image_detect_background: Suggest a background color from the border
//
// Transformations:
//   - image_squarify: Pad to a square canvas and resample
//   - image_color_key: Turn a background color into transparency
//   - image_process: Optional color key followed by squarify, the full
//     pipeline in one call
//
// Transformation tools return the result as base64 PNG and accept an
// optional save_path to also write the PNG to disk.
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded images, keyed by the
// source string (path or URL) and reused across tool calls. The cache
// persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
