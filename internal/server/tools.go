package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// sourceProperty is the schema for the source argument shared by every tool.
func sourceProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Path to the image file, or an http(s) URL to fetch it from",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image from a file path or URL and return its dimensions, format, and alpha-channel information.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": sourceProperty(),
				},
				"required": []string{"source"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": sourceProperty(),
				},
				"required": []string{"source"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": sourceProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"source", "x", "y"},
			},
		},
		{
			Name:        "image_detect_background",
			Description: "Suggest the image's background color by analyzing its border pixels. Useful for choosing the color to key out.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": sourceProperty(),
				},
				"required": []string{"source"},
			},
		},

		// Transformations
		{
			Name:        "image_squarify",
			Description: "Center the image on a transparent square canvas sized to its longer dimension and resample to the desired size. Returns base64 PNG plus natural and effective sizes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": sourceProperty(),
					"desired_size": map[string]interface{}{
						"type":        "integer",
						"description": "Output side length in pixels. Clamped to the longer input dimension; omit for the natural size.",
					},
					"save_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to also write the result as a PNG file",
					},
				},
				"required": []string{"source"},
			},
		},
		{
			Name:        "image_color_key",
			Description: "Turn a background color into transparency, either by exact matching or a smooth color-distance fade. Returns base64 PNG and the color that was keyed out.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": sourceProperty(),
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Key color as hex (e.g. #FFFFFF). Ignored when auto_detect is true.",
					},
					"exact_match": map[string]interface{}{
						"type":        "boolean",
						"description": "Binary mask: only pixels exactly equal to the key color become transparent. Default is a proportional fade.",
						"default":     false,
					},
					"auto_detect": map[string]interface{}{
						"type":        "boolean",
						"description": "Use the color of the top-left pixel as the key color",
						"default":     false,
					},
					"save_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to also write the result as a PNG file",
					},
				},
				"required": []string{"source"},
			},
		},
		{
			Name:        "image_process",
			Description: "Full pipeline: optionally key a background color to transparency, then squarify. Equivalent to image_color_key followed by image_squarify.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": sourceProperty(),
					"desired_size": map[string]interface{}{
						"type":        "integer",
						"description": "Output side length in pixels. Clamped to the longer input dimension; omit for the natural size.",
					},
					"color_key": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to run the transparency step before squarifying",
						"default":     false,
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Key color as hex (e.g. #FFFFFF). Ignored when auto_detect is true.",
					},
					"exact_match": map[string]interface{}{
						"type":        "boolean",
						"description": "Binary mask instead of a proportional fade",
						"default":     false,
					},
					"auto_detect": map[string]interface{}{
						"type":        "boolean",
						"description": "Use the color of the top-left pixel as the key color",
						"default":     false,
					},
					"save_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to also write the result as a PNG file",
					},
				},
				"required": []string{"source"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
