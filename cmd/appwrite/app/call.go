package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/appwrite-go/internal/providers/http/client"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

// CallOptions holds options for the call command
type CallOptions struct {
	*GlobalOptions
	Params     []string // key=value, sent as strings
	JSONParams []string // key=<json>, decoded before sending
	Headers    []string // key=value
	Files      []string // field=path, sent as multipart file parts
	Output     string   // write binary payloads here instead of stdout
}

// NewCallCommand creates the call command.
//
// Usage:
//
//	appwrite call METHOD PATH [--param k=v]... [--header k=v]...
func NewCallCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &CallOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "call METHOD PATH",
		Short: "Call an endpoint and print the response",
		Long: `Call sends one request and prints the JSON payload.

Params go to the query string for GET and to the body otherwise. A --file
switches the body to multipart/form-data.`,
		Example: `  # List files in a bucket
  appwrite call GET /storage/buckets/photos/files --json 'queries=["limit(5)"]'

  # Delete a file
  appwrite call DELETE /storage/buckets/photos/files/f1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, opts, strings.ToUpper(args[0]), args[1])
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Params, "param", "p", nil, "string param key=value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.JSONParams, "json", nil, "JSON param key=<json> (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.Headers, "header", "H", nil, "header key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.Files, "file", "f", nil, "file part field=path (repeatable)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write binary responses to this file")

	return cmd
}

func runCall(cmd *cobra.Command, opts *CallOptions, method, path string) error {
	headers, err := parseHeaders(opts.Headers)
	if err != nil {
		return err
	}
	params, err := parseParams(opts.Params, opts.JSONParams, opts.Files)
	if err != nil {
		return err
	}
	if len(opts.Files) > 0 {
		headers["content-type"] = "multipart/form-data"
	}

	c, logger, err := getClient(opts.GlobalOptions)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	resp, err := c.Call(cmd.Context(), method, path, headers, params)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return printResponse(cmd.OutOrStdout(), resp, opts.Output)
}

func printResponse(out io.Writer, resp *client.Response, output string) error {
	switch resp.Kind {
	case client.PayloadJSON:
		return printJSON(out, resp.Object.Interface())
	case client.PayloadBinary:
		if output == "" {
			_, err := out.Write(resp.Bytes)
			return err
		}
		if err := os.WriteFile(output, resp.Bytes, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(out, "Wrote %s to %s\n", formatSize(int64(len(resp.Bytes))), output)
		return nil
	default:
		fmt.Fprintf(out, "%d (no content)\n", resp.StatusCode)
		return nil
	}
}

func printJSON(out io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func parseHeaders(pairs []string) (map[string]string, error) {
	headers := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, err := splitPair(pair)
		if err != nil {
			return nil, err
		}
		headers[k] = v
	}
	return headers, nil
}

func parseParams(strs, jsons, fileSpecs []string) (map[string]any, error) {
	params := make(map[string]any, len(strs)+len(jsons)+len(fileSpecs))

	for _, pair := range strs {
		k, v, err := splitPair(pair)
		if err != nil {
			return nil, err
		}
		params[k] = v
	}

	for _, pair := range jsons {
		k, raw, err := splitPair(pair)
		if err != nil {
			return nil, err
		}
		var v any
		if err := sonic.UnmarshalString(raw, &v); err != nil {
			return nil, fmt.Errorf("param %q is not valid JSON: %w", k, err)
		}
		params[k] = v
	}

	for _, spec := range fileSpecs {
		field, path, err := splitPair(spec)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		params[field] = client.FilePart{Filename: filepath.Base(path), Data: data}
	}

	return params, nil
}

func splitPair(pair string) (string, string, error) {
	k, v, ok := strings.Cut(pair, "=")
	if !ok || k == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", pair)
	}
	return k, v, nil
}
