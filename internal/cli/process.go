package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pixelmill/pixelmill/internal/api"
)

var (
	inputPath  string
	outputPath string
)

var processCmd = &cobra.Command{
	Use:   "process [query]",
	Short: "Transform an image with an instruction string",
	Long: `Process reads the input image, applies the transformations described
by the query string and writes the encoded result to the output path.
Without -o the result lands next to the input, named for the effective
output format.

The query uses the same grammar as the URL API, for example:
  "w=300&h=200&fit=cover&a=top"
  "ro=90&sat=0.5&output=webp"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		if outputPath != "" {
			st := manager.ProcessFile(cmd.Context(), query, inputPath, outputPath)
			if !st.OK() {
				return fmt.Errorf("%s", st.Error())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", outputPath, st.Bytes)
			return nil
		}

		// No explicit output path: the format is only known once the
		// request resolved it, so buffer first and name the file after
		// the effective format.
		var dst api.BufferTarget
		st := manager.Process(cmd.Context(), query, api.FileSource(inputPath), &dst)
		if !st.OK() {
			return fmt.Errorf("%s", st.Error())
		}
		out := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + st.Format.Extension()
		if out == inputPath {
			return fmt.Errorf("refusing to overwrite %s, pass -o for an explicit output path", inputPath)
		}
		if err := api.FileTarget(out).Commit(dst.Data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, st.Bytes)
		return nil
	},
}

func init() {
	processCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input image path (required)")
	processCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output image path (default: input path with the output format's extension)")
	processCmd.MarkFlagRequired("input")
}
