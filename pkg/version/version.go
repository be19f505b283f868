// Package version contains the identifiable versioning info of the tool.
package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	projectName = "obfeval"
	version     = "unknown"
	commit      = "unknown"
)

var Version = VersionContext{
	Name:    projectName,
	Version: version,
	Commit:  commit,
}

type VersionContext struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

func (vc *VersionContext) String() string {
	return fmt.Sprintf("%s CLI: %s+%s", vc.Name, vc.Version, vc.Commit)
}

func NewCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print obfuscation evaluation tool version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version.String())
		},
	}
}
