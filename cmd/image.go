package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var imageOutput string

// imageCmd represents the image command
var imageCmd = &cobra.Command{
	Use:   "image <id|name>",
	Short: "Download an entry's compendium picture",
	Args:  cobra.ExactArgs(1),
	RunE:  runImage,
}

func init() {
	imageCmd.Flags().StringVarP(&imageOutput, "output", "o", "", "output file (default <entry_name>.png)")
}

func runImage(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	id := parseIdentifier(args[0])

	entry, err := client.Entry(ctx, id)
	if err != nil {
		return err
	}

	data, err := client.DownloadImage(ctx, entry)
	if err != nil {
		return err
	}

	output := imageOutput
	if output == "" {
		output = entryFileName(entry.Core().Name) + ".png"
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	fmt.Printf("Saved %s (%d bytes)\n", output, len(data))
	return nil
}

func entryFileName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r == ' ' || r == '/':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
