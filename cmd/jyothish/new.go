package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/spf13/cobra"

	"github.com/jyodsh/jyothish-in/scaffold"
)

func (c *cli) newPostCmd() *cobra.Command {
	var summary string
	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a new post in the content directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := createPost(c.cfg.ContentDir, strings.Join(args, " "), summary, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&summary, "summary", "", "one-line summary for the post")
	return cmd
}

// createPost writes a new post named after title into dir and returns its
// path. It refuses to overwrite an existing file.
func createPost(dir, title, summary string, now time.Time) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.New("title is required")
	}
	name, err := slug.Normalize(title)
	if err != nil {
		return "", fmt.Errorf("slug for %q: %w", title, err)
	}
	if name == "" {
		return "", fmt.Errorf("title %q has no characters usable in a slug", title)
	}
	if summary == "" {
		summary = title
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name+".mdx")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("post %q already exists", path)
		}
		return "", err
	}
	defer f.Close()

	err = scaffold.WritePost(f, scaffold.Post{
		Title:       title,
		PublishedAt: now.Format("2006-01-02"),
		Summary:     summary,
	})
	if err != nil {
		return "", err
	}
	return path, f.Close()
}
