// Package wire implements the line-oriented TCP protocol for package dependency operations.
// Protocol format: "COMMAND|package|dependencies" (trailing newline stripped by the
// caller) with strict validation for compatibility with external test harnesses and
// production validation systems.
package wire

import (
	"fmt"
	"regexp"
	"strings"
)

// Command represents a parsed client command.
type Command struct {
	Type         CommandType
	Package      string
	Dependencies []string
}

// CommandType represents the type of command.
type CommandType int

const (
	IndexCommand CommandType = iota
	RemoveCommand
	QueryCommand
)

const (
	cmdIndexStr   = "INDEX"
	cmdRemoveStr  = "REMOVE"
	cmdQueryStr   = "QUERY"
	cmdUnknownStr = "UNKNOWN"
)

// String returns the string representation of a command type.
func (ct CommandType) String() string {
	switch ct {
	case IndexCommand:
		return cmdIndexStr
	case RemoveCommand:
		return cmdRemoveStr
	case QueryCommand:
		return cmdQueryStr
	default:
		return cmdUnknownStr
	}
}

// Response represents server response codes.
type Response int

// Response enumeration for type-safe response handling.
const (
	OK Response = iota
	FAIL
	ERROR
)

// Protocol constants for wire format compliance and consistency.
const (
	respOK    = "OK\n"
	respFAIL  = "FAIL\n"
	respERROR = "ERROR\n"

	// DependencySeparator separates dependency tokens within the third field.
	DependencySeparator = ","
)

// String returns the protocol response string with required trailing newline.
func (r Response) String() string {
	switch r {
	case OK:
		return respOK
	case FAIL:
		return respFAIL
	default:
		return respERROR
	}
}

// requestPattern is a precompiled line regex: command and name are runs of
// non-pipe bytes, which makes the two separators unambiguous; the dependency
// field is whatever remains. Nothing here trims whitespace — a token's
// leading/trailing spaces are part of the opaque name.
var requestPattern = regexp.MustCompile(`^(?P<cmd>[^|]+)\|(?P<name>[^|]+)\|(?P<deps>.*)$`)

// ParseCommand parses a single line, without its trailing newline, into a Command.
// Returns an error describing the grammar violation on any malformed input.
func ParseCommand(line string) (*Command, error) {
	if line == "" {
		return nil, fmt.Errorf("empty request")
	}

	match := requestPattern.FindStringSubmatch(line)
	if match == nil {
		return nil, fmt.Errorf("line does not match COMMAND|name|deps grammar: %q", line)
	}

	cmdStr, pkg, depsStr := match[1], match[2], match[3]

	var cmdType CommandType
	switch cmdStr {
	case cmdIndexStr:
		cmdType = IndexCommand
	case cmdRemoveStr:
		cmdType = RemoveCommand
	case cmdQueryStr:
		cmdType = QueryCommand
	default:
		return nil, fmt.Errorf("unknown command: %q", cmdStr)
	}

	if pkg == "" {
		return nil, fmt.Errorf("package name cannot be empty")
	}

	// Dependencies are parsed regardless of command; the Store ignores them for
	// QUERY/REMOVE.
	var deps []string
	if depsStr != "" {
		deps = strings.Split(depsStr, DependencySeparator)
	}

	return &Command{
		Type:         cmdType,
		Package:      pkg,
		Dependencies: deps,
	}, nil
}
