package tool

import "errors"

// Sentinel errors for registry operations.
var (
	// ErrEmptyToolName indicates a registration with a blank name.
	ErrEmptyToolName = errors.New("tool: empty tool name")

	// ErrNilTool indicates a registration with a nil function.
	ErrNilTool = errors.New("tool: nil tool func")

	// ErrDuplicateTool indicates the name is already registered.
	ErrDuplicateTool = errors.New("tool: duplicate tool")

	// ErrToolNotFound indicates no tool is registered under the name.
	ErrToolNotFound = errors.New("tool: not found")
)
