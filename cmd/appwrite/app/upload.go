package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/GriffinCanCode/appwrite-go/internal/providers/http/files"
	"github.com/GriffinCanCode/appwrite-go/internal/services/storage"
	"github.com/GriffinCanCode/appwrite-go/internal/shared/id"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
)

// UploadOptions holds options for the upload command
type UploadOptions struct {
	*GlobalOptions
	FileID      string
	Permissions []string
	MimeType    string
	Quiet       bool
}

// NewUploadCommand creates the upload command.
//
// Usage:
//
//	appwrite upload BUCKET PATH... [--file-id ID] [--permission P]...
//
// PATH may be a doublestar glob such as 'photos/**/*.png'. A first upload
// should keep the default unique() id; the server assigns one and the
// progress lines print it. Re-running an interrupted upload with
// --file-id set to that id continues from the chunks the server already
// holds. A custom id the server has never seen fails with 404 for files of
// 5 MiB or more.
func NewUploadCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &UploadOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "upload BUCKET PATH...",
		Short: "Upload files to a bucket",
		Example: `  # Upload with a server-generated id
  appwrite upload photos ./cat.png

  # Upload every PNG below a directory
  appwrite upload photos 'album/**/*.png'

  # Resume an interrupted upload, using the id printed in its progress lines
  appwrite upload videos ./talk.mp4 --file-id 65f1c0e2a9b3`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, opts, args[0], args[1:])
		},
	}

	cmd.Flags().StringVar(&opts.FileID, "file-id", id.Unique(), "file id; keep unique() for a first upload, pass the server-assigned id to resume")
	cmd.Flags().StringArrayVar(&opts.Permissions, "permission", nil, `permission string, e.g. 'read("any")' (repeatable)`)
	cmd.Flags().StringVar(&opts.MimeType, "mime-type", "", "override the detected content type")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "do not print progress")

	return cmd
}

func runUpload(cmd *cobra.Command, opts *UploadOptions, bucketID string, patterns []string) error {
	paths, err := expandPaths(patterns)
	if err != nil {
		return err
	}

	fileID := opts.FileID
	if !id.IsUnique(fileID) {
		if len(paths) > 1 {
			return errors.New("--file-id can only be used with a single file")
		}
		if fileID, err = id.Custom(fileID); err != nil {
			return err
		}
	}

	c, logger, err := getClient(opts.GlobalOptions)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	out := cmd.OutOrStdout()
	svc := storage.New(c, files.WithLogger(logger))

	for _, path := range paths {
		if len(paths) > 1 {
			fmt.Fprintf(out, "==> %s\n", path)
		}

		input := files.FromPath(path)
		if opts.MimeType != "" {
			input = input.WithMimeType(opts.MimeType)
		}

		params := storage.CreateFileParams{
			BucketID:    bucketID,
			FileID:      fileID,
			File:        input,
			Permissions: opts.Permissions,
		}
		if !opts.Quiet {
			params.OnProgress = func(p files.UploadProgress) {
				fmt.Fprintf(out, "%6.2f%%  %d/%d chunks  %s  %s\n",
					p.Progress, p.ChunksUploaded, p.ChunksTotal, formatSize(p.SizeUploaded), p.ID)
			}
		}

		file, err := svc.CreateFile(cmd.Context(), params)
		if err != nil {
			return fmt.Errorf("upload %s failed: %w", path, err)
		}
		if err := printJSON(out, file); err != nil {
			return err
		}
	}
	return nil
}

// expandPaths resolves glob patterns to regular files. A pattern without
// matches is kept as a literal path so that opening it reports the error.
func expandPaths(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			paths = append(paths, pattern)
			continue
		}
		for _, match := range matches {
			if info, err := os.Stat(match); err == nil && info.IsDir() {
				continue
			}
			paths = append(paths, match)
		}
	}
	if len(paths) == 0 {
		return nil, errors.New("no files matched")
	}
	return paths, nil
}
