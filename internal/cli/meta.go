package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pixelmill/pixelmill/internal/api"
)

var metaCmd = &cobra.Command{
	Use:   "meta <image>",
	Short: "Print the metadata report of an image as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dst api.BufferTarget
		st := manager.Process(cmd.Context(), "output=json", api.FileSource(args[0]), &dst)
		if !st.OK() {
			return fmt.Errorf("%s", st.Error())
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(dst.Data))
		return nil
	},
}
