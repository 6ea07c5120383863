package loader

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/provkit/provkit/internal/config"
)

// ConfigPathsFlag is the long name of the repeatable configuration-path
// flag; its short form is -c.
const ConfigPathsFlag = "config-paths"

// SplitConfigArgs extracts every -c/--config-paths value from args and
// returns the values alongside the remaining arguments with those flags
// removed. Accepted forms: "-c DIR", "-c=DIR", "--config-paths DIR",
// "--config-paths=DIR". Extraction stops at "--"; it and everything after
// it are returned untouched.
func SplitConfigArgs(args []string) (paths, rest []string) {
	long := "--" + ConfigPathsFlag
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			rest = append(rest, args[i:]...)
			return paths, rest
		case a == "-c" || a == long:
			if i+1 < len(args) {
				i++
				paths = append(paths, args[i])
			}
		case strings.HasPrefix(a, "-c="):
			paths = append(paths, strings.TrimPrefix(a, "-c="))
		case strings.HasPrefix(a, long+"="):
			paths = append(paths, strings.TrimPrefix(a, long+"="))
		default:
			rest = append(rest, a)
		}
	}
	return paths, rest
}

// Reconfig implements the two-pass parse. Configuration paths are extracted
// from args and applied first, relative to the working directory; only then
// is the main flag set built, so its defaults can read values the
// configuration step just set. The remaining arguments are parsed against
// that flag set, which is returned.
func (l *Loader) Reconfig(args []string, define func(*config.State) (*pflag.FlagSet, error)) (*pflag.FlagSet, error) {
	paths, rest := SplitConfigArgs(args)
	if err := l.ConfigureCWD(paths); err != nil {
		return nil, err
	}
	fs, err := define(l.state)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(rest); err != nil {
		return nil, err
	}
	return fs, nil
}

// AddAuthFlags defines the provider and credential flags on fs, with
// defaults read from st. A missing default surfaces as a
// *config.KeyNotFoundError: the secrets configuration paths are expected to
// set all three keys before the main parse.
func AddAuthFlags(fs *pflag.FlagSet, st *config.State) error {
	provider, err := st.GetString("default_provider")
	if err != nil {
		return err
	}
	userid, err := st.GetString("default_userid")
	if err != nil {
		return err
	}
	secret, err := st.GetString("default_secret_key")
	if err != nil {
		return err
	}
	fs.StringP("provider", "p", provider, "cloud provider name")
	fs.StringP("userid", "u", userid, "provider account user id")
	fs.StringP("secret-key", "k", secret, "provider API secret key")
	return nil
}
