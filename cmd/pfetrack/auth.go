package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
)

type loginOptions struct {
	Username      string
	PasswordStdin bool
}

func runLogin(ctx *commandContext, args []string) error {
	fs := newFlagSet(ctx, "login")
	var opts loginOptions
	fs.StringVarP(&opts.Username, "username", "u", "", "Username (prompted when omitted)")
	fs.BoolVar(&opts.PasswordStdin, "password-stdin", false, "Read the password from stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := bufio.NewReader(ctx.Stdin)
	if strings.TrimSpace(opts.Username) == "" {
		if opts.PasswordStdin {
			return usageError("--username is required with --password-stdin")
		}
		_ = writef(ctx.Stderr, "Username: ")
		line, err := readLine(in)
		if err != nil {
			return err
		}
		opts.Username = line
	}
	password, err := readPassword(ctx, in, opts.PasswordStdin)
	if err != nil {
		return err
	}

	res := ctx.Container.Sessions.Login(ctx.Ctx, opts.Username, password)
	if !res.Success {
		return errors.New(res.Message)
	}
	_ = writef(ctx.Stderr, "Signed in as %s\n", res.User.FullName())
	return writeln(ctx.Stdout, domainauth.LandingPath(res.User))
}

type registerOptions struct {
	Input         domainauth.RegisterInput
	PasswordStdin bool
}

func runRegister(ctx *commandContext, args []string) error {
	fs := newFlagSet(ctx, "register")
	var opts registerOptions
	fs.StringVar(&opts.Input.FirstName, "first-name", "", "First name")
	fs.StringVar(&opts.Input.LastName, "last-name", "", "Last name")
	fs.StringVar(&opts.Input.Username, "username", "", "Username")
	fs.StringVar(&opts.Input.Email, "email", "", "Email address")
	fs.BoolVar(&opts.PasswordStdin, "password-stdin", false, "Read the password from stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := readPassword(ctx, bufio.NewReader(ctx.Stdin), opts.PasswordStdin)
	if err != nil {
		return err
	}
	opts.Input.Password = password

	res := ctx.Container.Sessions.Register(ctx.Ctx, opts.Input)
	if !res.Success {
		return errors.New(res.Message)
	}
	return writeln(ctx.Stdout, res.Message)
}

func runLogout(ctx *commandContext, args []string) error {
	if len(args) > 0 {
		return usageError("logout takes no arguments")
	}
	ctx.Container.Sessions.Logout(ctx.Ctx)
	return writeln(ctx.Stdout, "Signed out")
}

type sessionView struct {
	State           string                   `json:"state"`
	IsAuthenticated bool                     `json:"isAuthenticated"`
	CurrentUser     *domainauth.UserIdentity `json:"currentUser"`
	Landing         string                   `json:"landing,omitempty"`
}

func runWhoami(ctx *commandContext, args []string) error {
	fs := newFlagSet(ctx, "whoami")
	query := fs.String("query", "", "JMESPath expression applied to the output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	snap := ctx.Container.Sessions.Snapshot()
	view := sessionView{
		State:           snap.State().String(),
		IsAuthenticated: snap.IsAuthenticated(),
		CurrentUser:     snap.CurrentUser,
	}
	if snap.IsAuthenticated() {
		view.Landing = domainauth.LandingPath(snap.CurrentUser)
	}
	return printJSON(ctx.Stdout, view, *query)
}

func runOpen(ctx *commandContext, args []string) error {
	if len(args) != 1 {
		return usageError("open takes exactly one location")
	}
	return printJSON(ctx.Stdout, ctx.Container.Guard.Evaluate(args[0]), "")
}

// readPassword takes the first stdin line when fromStdin is set, otherwise prompts without echo.
func readPassword(ctx *commandContext, in *bufio.Reader, fromStdin bool) (string, error) {
	if fromStdin {
		return readLine(in)
	}
	if ctx.ReadPassword == nil {
		return "", usageError("no password prompt available (use --password-stdin)")
	}
	pwd, err := ctx.ReadPassword()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
