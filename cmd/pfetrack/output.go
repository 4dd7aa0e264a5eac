package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/term"
)

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

// printJSON writes v as indented JSON, optionally filtered through a JMESPath expression.
func printJSON(w io.Writer, v any, query string) error {
	out := v
	if q := strings.TrimSpace(query); q != "" {
		filtered, err := applyQuery(q, v)
		if err != nil {
			return err
		}
		out = filtered
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// applyQuery evaluates expr against v's JSON form so struct tags drive field names.
func applyQuery(expr string, v any) (any, error) {
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		return nil, usageError("invalid --query %q: %v", expr, err)
	}
	data, err := toGeneric(v)
	if err != nil {
		return nil, err
	}
	res, err := compiled.Search(data)
	if err != nil {
		return nil, fmt.Errorf("evaluate --query: %w", err)
	}
	return res, nil
}

func toGeneric(v any) (any, error) {
	if raw, ok := v.(json.RawMessage); ok {
		var out any
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return out, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	return out, nil
}

func readTerminalPassword() ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, usageError("no terminal available for the password prompt (use --password-stdin)")
	}
	_ = writef(os.Stderr, "Password: ")
	pwd, err := term.ReadPassword(fd)
	_ = writeln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pwd, nil
}
