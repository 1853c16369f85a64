package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped by the build; the default marks source builds.
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the bookdesk version",
		RunE: func(cmd *cobra.Command, args []string) error {
			header("bookdesk %s", Version)
			fmt.Println("service:", cfg.APIURL)
			return nil
		},
	}
}
