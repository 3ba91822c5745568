package wire

import (
	"testing"
)

// TestParseCommand_ValidCases validates parsing of properly formatted protocol lines
// (as delivered by the connection handler, with the trailing newline already stripped)
// across all command types and dependency configurations.
func TestParseCommand_ValidCases(t *testing.T) {
	tests := []struct {
		input    string
		expected *Command
	}{
		{
			input: "INDEX|package1|dep1,dep2",
			expected: &Command{
				Type:         IndexCommand,
				Package:      "package1",
				Dependencies: []string{"dep1", "dep2"},
			},
		},
		{
			input: "REMOVE|package1|",
			expected: &Command{
				Type:         RemoveCommand,
				Package:      "package1",
				Dependencies: nil,
			},
		},
		{
			input: "QUERY|package1|",
			expected: &Command{
				Type:         QueryCommand,
				Package:      "package1",
				Dependencies: nil,
			},
		},
		{
			input: "INDEX|package1|", // No dependencies
			expected: &Command{
				Type:         IndexCommand,
				Package:      "package1",
				Dependencies: nil,
			},
		},
		{
			input: "INDEX|pkg|dep1,dep2,", // Trailing comma yields an empty final token
			expected: &Command{
				Type:         IndexCommand,
				Package:      "pkg",
				Dependencies: []string{"dep1", "dep2", ""},
			},
		},
		{
			input: "INDEX| pkg |dep1, dep2", // Whitespace is significant: never trimmed
			expected: &Command{
				Type:         IndexCommand,
				Package:      " pkg ",
				Dependencies: []string{"dep1", " dep2"},
			},
		},
	}

	for _, test := range tests {
		cmd, err := ParseCommand(test.input)
		if err != nil {
			t.Errorf("ParseCommand(%q) returned error: %v", test.input, err)
			continue
		}

		if cmd.Type != test.expected.Type {
			t.Errorf("ParseCommand(%q) Type = %v, expected %v", test.input, cmd.Type, test.expected.Type)
		}

		if cmd.Package != test.expected.Package {
			t.Errorf("ParseCommand(%q) Package = %q, expected %q", test.input, cmd.Package, test.expected.Package)
		}

		if len(cmd.Dependencies) != len(test.expected.Dependencies) {
			t.Errorf("ParseCommand(%q) Dependencies length = %d, expected %d",
				test.input, len(cmd.Dependencies), len(test.expected.Dependencies))
			continue
		}

		for i, dep := range cmd.Dependencies {
			if dep != test.expected.Dependencies[i] {
				t.Errorf("ParseCommand(%q) Dependencies[%d] = %q, expected %q",
					test.input, i, dep, test.expected.Dependencies[i])
			}
		}
	}
}

// TestParseCommand_ExtraPipesFallIntoDeps documents a resolved ambiguity: the grammar
// requires at least two pipe separators, not exactly two. Additional pipes land in the
// (unvalidated) dependency field.
func TestParseCommand_ExtraPipesFallIntoDeps(t *testing.T) {
	cmd, err := ParseCommand("INDEX|package|deps|extra")
	if err != nil {
		t.Fatalf("ParseCommand returned error: %v", err)
	}
	if cmd.Package != "package" {
		t.Errorf("Package = %q, want %q", cmd.Package, "package")
	}
	if len(cmd.Dependencies) != 1 || cmd.Dependencies[0] != "deps|extra" {
		t.Errorf("Dependencies = %v, want a single token %q", cmd.Dependencies, "deps|extra")
	}
}

// TestParseCommand_ErrorCases validates proper error handling for malformed protocol
// lines: invalid commands, missing fields, fewer than two pipe separators, and
// lowercase command variants (commands are case-sensitive).
func TestParseCommand_ErrorCases(t *testing.T) {
	errorCases := []string{
		"INVALID|package|", // Invalid command
		"INDEX||",          // Empty package name
		"INDEX",            // No separators at all
		"INDEX|package",    // Only one separator
		"",                 // Empty line
		"INDeX|ceylon|",    // Mixed-case command
		"index|ceylon|",    // Lowercase command
		"QUERY,cloog|",     // Comma instead of first pipe
		"REMOVE|clooper",   // Missing second pipe
	}

	for _, input := range errorCases {
		_, err := ParseCommand(input)
		if err == nil {
			t.Errorf("ParseCommand(%q) should have returned an error", input)
		}
	}
}

// TestResponse_String validates that response codes generate correct protocol-compliant
// strings with proper newline termination.
func TestResponse_String(t *testing.T) {
	tests := []struct {
		response Response
		expected string
	}{
		{OK, OK.String()},
		{FAIL, FAIL.String()},
		{ERROR, ERROR.String()},
		{Response(999), ERROR.String()}, // default case
	}

	for _, test := range tests {
		result := test.response.String()
		if result != test.expected {
			t.Errorf("Response(%v).String() = %q, expected %q", test.response, result, test.expected)
		}
	}
}

// TestCommandType_String validates string representation of command types
// including handling of unknown command values.
func TestCommandType_String(t *testing.T) {
	tests := []struct {
		cmdType  CommandType
		expected string
	}{
		{IndexCommand, "INDEX"},
		{RemoveCommand, "REMOVE"},
		{QueryCommand, "QUERY"},
		{CommandType(999), "UNKNOWN"}, // default case
	}

	for _, test := range tests {
		result := test.cmdType.String()
		if result != test.expected {
			t.Errorf("CommandType(%v).String() = %q, expected %q", test.cmdType, result, test.expected)
		}
	}
}
