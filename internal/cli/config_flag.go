package cli

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const configFlag = "config"

// ConfigPath extracts --config from args ahead of command parsing, since the
// config decides how the App is wired. GANTT_CONFIG is the fallback.
func ConfigPath(args []string) string {
	fs := pflag.NewFlagSet("ganttsheet", pflag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(discard{})
	path := fs.String(configFlag, os.Getenv("GANTT_CONFIG"), "")
	_ = fs.Parse(configArgs(args))
	return *path
}

// configArgs keeps only the --config tokens so the other commands' flags
// never reach the pre-parser.
func configArgs(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		switch {
		case strings.HasPrefix(arg, "--"+configFlag+"="):
			out = append(out, arg)
		case arg == "--"+configFlag && i+1 < len(args):
			out = append(out, arg, args[i+1])
			i++
		}
	}
	return out
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
