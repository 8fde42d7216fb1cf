package cli

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/ctl"
	"github.com/effective-security/x/fileutil"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/xjws", "cli")

// Cli provides CLI context to run commands
type Cli struct {
	Version  ctl.VersionFlag `name:"version" help:"Print version information and quit" hidden:""`
	Debug    bool            `short:"D" help:"Enable debug mode"`
	LogLevel string          `short:"l" help:"Set the logging level (debug|info|warn|error)" default:"error"`

	// Stdin is the source to read from, typically set to os.Stdin
	stdin io.Reader
	// Output is the destination for all output from the command, typically set to os.Stdout
	output io.Writer
	// ErrOutput is the destination for errors.
	// If not set, errors will be written to os.StdError
	errOutput io.Writer
}

// Reader is the source to read from, typically set to os.Stdin
func (c *Cli) Reader() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

// WithReader allows to specify a custom reader
func (c *Cli) WithReader(reader io.Reader) *Cli {
	c.stdin = reader
	return c
}

// Writer returns a writer for control output
func (c *Cli) Writer() io.Writer {
	if c.output != nil {
		return c.output
	}
	return os.Stdout
}

// WithWriter allows to specify a custom writer
func (c *Cli) WithWriter(out io.Writer) *Cli {
	c.output = out
	return c
}

// ErrWriter returns a writer for control output
func (c *Cli) ErrWriter() io.Writer {
	if c.errOutput != nil {
		return c.errOutput
	}
	return os.Stderr
}

// WithErrWriter allows to specify a custom error writer
func (c *Cli) WithErrWriter(out io.Writer) *Cli {
	c.errOutput = out
	return c
}

// AfterApply hook sets the log level
func (c *Cli) AfterApply(_ *kong.Kong, _ kong.Vars) error {
	if c.Debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
		return nil
	}

	val := strings.TrimLeft(c.LogLevel, "=")
	if val == "" {
		val = "error"
	}
	l, err := xlog.ParseLevel(strings.ToUpper(val))
	if err != nil {
		return errors.WithStack(err)
	}
	xlog.SetGlobalLogLevel(l)
	return nil
}

// WriteJSON prints response to out
func (c *Cli) WriteJSON(value any) error {
	return ctl.WriteJSON(c.Writer(), value)
}

// ReadFile reads from stdin if the file is "-"
func (c *Cli) ReadFile(filename string) ([]byte, error) {
	if filename == "" {
		return nil, errors.New("empty file name")
	}
	if filename == "-" {
		return io.ReadAll(c.Reader())
	}
	return os.ReadFile(filename)
}

// LoadSecret resolves the secret, that can be a literal value,
// or `env://` and `file://` references
func (c *Cli) LoadSecret(secret string) ([]byte, error) {
	val, err := fileutil.LoadConfigWithSchema(secret)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to load secret")
	}
	if val == "" {
		return nil, errors.New("secret is empty")
	}
	return []byte(val), nil
}

// ReadToken returns the token, or reads it from stdin if the value is "-"
func (c *Cli) ReadToken(token string) ([]byte, error) {
	if token == "-" {
		raw, err := io.ReadAll(c.Reader())
		if err != nil {
			return nil, errors.WithStack(err)
		}
		token = string(raw)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("empty token")
	}
	logger.KV(xlog.DEBUG, "token_size", len(token))
	return []byte(token), nil
}
