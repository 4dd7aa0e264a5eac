package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/3issane/PFETRACKCODE212/internal/gateway"
)

type apiOptions struct {
	Method string
	Path   string
	Data   string
	Public bool
	Query  string
}

func parseAPIOptions(ctx *commandContext, args []string) (apiOptions, error) {
	fs := newFlagSet(ctx, "api")
	var opts apiOptions
	fs.StringVarP(&opts.Data, "data", "d", "", "JSON request body")
	fs.BoolVar(&opts.Public, "public", false, "Send without the session token")
	fs.StringVar(&opts.Query, "query", "", "JMESPath expression applied to a JSON response")
	if err := fs.Parse(args); err != nil {
		return apiOptions{}, err
	}
	if fs.NArg() != 2 {
		return apiOptions{}, usageError("api needs a method and a path")
	}
	opts.Method = strings.ToUpper(fs.Arg(0))
	opts.Path = fs.Arg(1)
	if opts.Data != "" && !json.Valid([]byte(opts.Data)) {
		return apiOptions{}, usageError("--data is not valid JSON")
	}
	return opts, nil
}

func runAPI(ctx *commandContext, args []string) error {
	opts, err := parseAPIOptions(ctx, args)
	if err != nil {
		return err
	}

	path, query, err := splitPath(opts.Path)
	if err != nil {
		return err
	}
	reqOpts := gateway.RequestOptions{Method: opts.Method, Query: query}
	if opts.Data != "" {
		reqOpts.RawBody = strings.NewReader(opts.Data)
		reqOpts.ContentType = "application/json"
	}

	call := ctx.Container.Gateway.Request
	if opts.Public {
		call = ctx.Container.Gateway.PublicRequest
	}
	resp, err := call(ctx.Ctx, path, reqOpts)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Close() }()

	if !resp.IsJSON() {
		if opts.Query != "" {
			return fmt.Errorf("--query needs a JSON response, got %s", resp.Header.Get("Content-Type"))
		}
		if _, err := io.Copy(ctx.Stdout, resp.Raw.Body); err != nil {
			return fmt.Errorf("copy response: %w", err)
		}
		return nil
	}
	if len(resp.Data) == 0 {
		if resp.StatusCode == http.StatusNoContent {
			return nil
		}
		return writeln(ctx.Stdout, "null")
	}
	return printJSON(ctx.Stdout, resp.Data, opts.Query)
}

// splitPath separates an inline query string from the API path.
func splitPath(raw string) (string, url.Values, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", nil, usageError("invalid path %q: %v", raw, err)
	}
	if u.IsAbs() || u.Host != "" {
		return "", nil, usageError("path %q must be relative to the API root", raw)
	}
	path := u.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path, u.Query(), nil
}
