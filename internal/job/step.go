package job

import (
	"encoding/json"
	"fmt"
)

// Arg is one element of a command line. Exactly one of Literal or Command is
// set: a plain string, or a nested command whose captured output the CI
// runner substitutes into the outer command. The nested form serializes as a
// string array inside the outer argument list.
type Arg struct {
	Literal string
	Command []string
}

// Lit returns a literal argument.
func Lit(s string) Arg {
	return Arg{Literal: s}
}

// Subst returns a nested command-substitution argument.
func Subst(args ...string) Arg {
	return Arg{Command: args}
}

// MarshalJSON encodes a literal as a JSON string and a substitution as a
// JSON string array.
func (a Arg) MarshalJSON() ([]byte, error) {
	if a.Command != nil {
		return json.Marshal(a.Command)
	}
	return json.Marshal(a.Literal)
}

// MarshalYAML mirrors the JSON shape.
func (a Arg) MarshalYAML() (any, error) {
	if a.Command != nil {
		return a.Command, nil
	}
	return a.Literal, nil
}

// UnmarshalJSON accepts either shape.
func (a *Arg) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &a.Command)
	}
	return json.Unmarshal(data, &a.Literal)
}

// String renders the argument for diagnostics, substitutions in $(...) form.
func (a Arg) String() string {
	if a.Command != nil {
		out := "$("
		for i, c := range a.Command {
			if i > 0 {
				out += " "
			}
			out += c
		}
		return out + ")"
	}
	return a.Literal
}

// Step is one command invocation: an ordered argument vector.
type Step []Arg

// Cmd builds a step of literal arguments.
func Cmd(args ...string) Step {
	step := make(Step, len(args))
	for i, a := range args {
		step[i] = Lit(a)
	}
	return step
}

// Export converts the step into plain JSON-shaped data (strings and string
// arrays) for canonical serialization.
func (s Step) Export() []any {
	out := make([]any, len(s))
	for i, a := range s {
		if a.Command != nil {
			nested := make([]any, len(a.Command))
			for j, c := range a.Command {
				nested[j] = c
			}
			out[i] = nested
			continue
		}
		out[i] = a.Literal
	}
	return out
}

// Executable returns the first literal argument, the program a step invokes.
func (s Step) Executable() (string, error) {
	if len(s) == 0 {
		return "", fmt.Errorf("empty step")
	}
	if s[0].Command != nil {
		return "", fmt.Errorf("step starts with a substitution, not a program")
	}
	return s[0].Literal, nil
}
