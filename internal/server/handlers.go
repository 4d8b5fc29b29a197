package server

import (
	"encoding/json"
	"fmt"

	"github.com/ahuang11/squarify/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_squarify").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the source image from cache
//  4. Calls the appropriate imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_detect_background":
		return s.handleImageDetectBackground(args)

	// Transformations
	case "image_squarify":
		return s.handleImageSquarify(args)
	case "image_color_key":
		return s.handleImageColorKey(args)
	case "image_process":
		return s.handleImageProcess(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Source string `json:"source"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Source)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Source)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Source string `json:"source"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Source)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

func (s *Server) handleImageDetectBackground(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Source)
	if err != nil {
		return nil, err
	}
	return imaging.DetectBackground(img)
}

// === Transformation Handlers ===

type imageSquarifyArgs struct {
	Source      string `json:"source"`
	DesiredSize int    `json:"desired_size"`
	SavePath    string `json:"save_path"`
}

func (s *Server) handleImageSquarify(args json.RawMessage) (interface{}, error) {
	var a imageSquarifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Source)
	if err != nil {
		return nil, err
	}

	result, err := imaging.Squarify(img, a.DesiredSize)
	if err != nil {
		return nil, err
	}
	if a.SavePath != "" {
		if err := imaging.WritePNG(result.Image, a.SavePath); err != nil {
			return nil, err
		}
	}
	return result, nil
}

type imageColorKeyArgs struct {
	Source     string `json:"source"`
	Color      string `json:"color"`
	ExactMatch bool   `json:"exact_match"`
	AutoDetect bool   `json:"auto_detect"`
	SavePath   string `json:"save_path"`
}

// keyColor resolves the color/auto_detect arguments into ColorKey inputs.
func (a *imageColorKeyArgs) keyColor() (*imaging.RGBColor, imaging.MaskMode, error) {
	mode := imaging.MaskFuzzy
	if a.ExactMatch {
		mode = imaging.MaskExact
	}

	if a.AutoDetect || a.Color == "" {
		return nil, mode, nil
	}
	target, err := imaging.ParseHexColor(a.Color)
	if err != nil {
		return nil, mode, err
	}
	return &target, mode, nil
}

func (s *Server) handleImageColorKey(args json.RawMessage) (interface{}, error) {
	var a imageColorKeyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	target, mode, err := a.keyColor()
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Source)
	if err != nil {
		return nil, err
	}

	result, err := imaging.ColorKey(img, target, mode, a.AutoDetect)
	if err != nil {
		return nil, err
	}
	if a.SavePath != "" {
		if err := imaging.WritePNG(result.Image, a.SavePath); err != nil {
			return nil, err
		}
	}
	return result, nil
}

type imageProcessArgs struct {
	Source      string `json:"source"`
	DesiredSize int    `json:"desired_size"`
	ColorKey    bool   `json:"color_key"`
	Color       string `json:"color"`
	ExactMatch  bool   `json:"exact_match"`
	AutoDetect  bool   `json:"auto_detect"`
	SavePath    string `json:"save_path"`
}

// ProcessResult combines the pipeline's keying and squarify outcomes. The
// color_key field is only present when keying was requested; its embedded
// image payload is omitted since the squarify result holds the final image.
type ProcessResult struct {
	ColorKey *processKeyInfo         `json:"color_key,omitempty"`
	Squarify *imaging.SquarifyResult `json:"squarify"`
}

type processKeyInfo struct {
	UsedColor  imaging.ColorResult `json:"used_color"`
	AutoDetect bool                `json:"auto_detected"`
	Mode       string              `json:"mode"`
}

// handleImageProcess runs the full pipeline: optional color keying first, so
// the keyed transparency composes with the transparent squarify padding, then
// squarify.
func (s *Server) handleImageProcess(args json.RawMessage) (interface{}, error) {
	var a imageProcessArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Source)
	if err != nil {
		return nil, err
	}

	out := &ProcessResult{}
	if a.ColorKey {
		keyArgs := imageColorKeyArgs{Color: a.Color, ExactMatch: a.ExactMatch, AutoDetect: a.AutoDetect}
		target, mode, err := keyArgs.keyColor()
		if err != nil {
			return nil, err
		}
		keyed, err := imaging.ColorKey(img, target, mode, a.AutoDetect)
		if err != nil {
			return nil, err
		}
		img = keyed.Image
		out.ColorKey = &processKeyInfo{
			UsedColor:  keyed.UsedColor,
			AutoDetect: keyed.AutoDetect,
			Mode:       keyed.Mode,
		}
	}

	squared, err := imaging.Squarify(img, a.DesiredSize)
	if err != nil {
		return nil, err
	}
	out.Squarify = squared

	if a.SavePath != "" {
		if err := imaging.WritePNG(squared.Image, a.SavePath); err != nil {
			return nil, err
		}
	}
	return out, nil
}
