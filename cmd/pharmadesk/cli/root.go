package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VersionInfo 构建版本信息
type VersionInfo struct {
	Version string
	Commit  string
}

// NewRootCommand 根命令
func NewRootCommand(info VersionInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pharmadesk",
		Short:         "Pharmaceutical stock expiry dashboard",
		Long:          "Upload a stock-on-hand spreadsheet, see which items are expired or expiring soon, filter by facility and item, and download the filtered table.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().String("config", "", "config file (default is config.toml next to the executable)")
	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)

	return cmd
}
