// Package cmdutil provides shared flags and input helpers for strainmap commands.
package cmdutil

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agentstation/strainmap/pkg/constants"
	"github.com/agentstation/strainmap/pkg/errors"
	"github.com/agentstation/strainmap/pkg/library"
)

// FilterFlags holds the library filter flags.
type FilterFlags struct {
	Search       string
	Manufacturer string
	Effect       string
	Medical      string
}

// AddFilterFlags adds library filter flags to a command.
func AddFilterFlags(cmd *cobra.Command) *FilterFlags {
	flags := &FilterFlags{}

	cmd.Flags().StringVarP(&flags.Search, "search", "s", "",
		"Filter by name substring")
	cmd.Flags().StringVarP(&flags.Manufacturer, "manufacturer", "m", "",
		"Filter by manufacturer")
	cmd.Flags().StringVarP(&flags.Effect, "effect", "e", "",
		"Filter by effect")
	cmd.Flags().StringVar(&flags.Medical, "medical", "",
		"Filter by medical application")

	return flags
}

// Filter converts the flags to a library filter.
func (f *FilterFlags) Filter() library.Filter {
	return library.Filter{
		Search:       f.Search,
		Manufacturer: f.Manufacturer,
		Effect:       f.Effect,
		Medical:      f.Medical,
	}
}

// ReadInput returns the text of the file named by the first argument, or
// the command's stdin when there is no argument or it is "-".
func ReadInput(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) > 0 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return "", errors.WrapIO("read", args[0], err)
		}
	} else {
		data, err = io.ReadAll(io.LimitReader(cmd.InOrStdin(), constants.MaxRequestBodyBytes))
		if err != nil {
			return "", errors.WrapIO("read", "stdin", err)
		}
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", errors.NewValidationError("input", "", "no strain text given, pass a file or pipe text on stdin")
	}
	return text, nil
}

// ChangedFlags returns the flags set explicitly on the command line, by name.
func ChangedFlags(cmd *cobra.Command) map[string]string {
	changed := make(map[string]string)
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if flag.Changed {
			changed[flag.Name] = flag.Value.String()
		}
	})
	return changed
}
