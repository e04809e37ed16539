package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2"

	"todocli/internal/backend/todoapi"
	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/service"
	"todocli/internal/session"
	"todocli/internal/tasks"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command: exchange email/password for a
// user record and bearer token, and persist both.
type LoginCmd struct {
	password string
	auth     service.Authenticator
	input    io.Reader
}

// SetAuth overrides the authenticator (for testing).
func (c *LoginCmd) SetAuth(a service.Authenticator) {
	c.auth = a
}

// SetInput overrides the password prompt source (for testing).
func (c *LoginCmd) SetInput(r io.Reader) {
	c.input = r
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in and store the session" }
func (c *LoginCmd) Usage() string     { return "todocli login [--password <password>] <email>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, client *tasks.Client, args []string, out, errOut io.Writer) int {
	return runAuth(ctx, cfg, c.auth, c.input, c.password, args, false, out, errOut)
}

// runAuth is the shared implementation for login and register.
func runAuth(ctx context.Context, cfg *config.Config, auth service.Authenticator, input io.Reader, password string, args []string, register bool, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}
	email := strings.TrimSpace(args[0])
	if email == "" || !strings.Contains(email, "@") {
		fmt.Fprintf(errOut, "error: invalid email: %s\n", args[0])
		return exitcode.UserError
	}

	if password == "" {
		var err error
		password, err = promptPassword(input, errOut)
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read password: %v\n", err)
			return exitcode.UserError
		}
	}
	if password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	if auth == nil {
		auth = todoapi.NewAnonymous(cfg, nil)
	}

	var (
		user  service.User
		token string
		err   error
	)
	if register {
		user, token, err = auth.Register(ctx, email, password)
	} else {
		user, token, err = auth.Login(ctx, email, password)
	}
	if err != nil {
		return fail(errOut, err)
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	sessions := session.NewStore(cfg.SessionPath(), cfg.TokenPath())
	if err := sessions.SaveToken(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}
	if err := sessions.SaveUser(user); err != nil {
		fmt.Fprintf(errOut, "error: failed to save session: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", user.Email)
	}
	return exitcode.Success
}

func promptPassword(input io.Reader, errOut io.Writer) (string, error) {
	if input == nil {
		input = os.Stdin
	}
	fmt.Fprint(errOut, "password: ")
	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
