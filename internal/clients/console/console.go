package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/budget-app/internal/logger"
	"max.ks1230/budget-app/internal/model/session"
)

const (
	usernamePrompt = "Username"
	passwordPrompt = "Password"
	commandPrompt  = "> "
)

// Client is the terminal adapter. It owns the interactive loop and
// provides the confirm and notify collaborators the core depends on.
type Client struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Client {
	return &Client{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm asks a yes/no question and treats anything but yes as no.
func (c *Client) Confirm(message string) bool {
	fmt.Fprintf(c.out, "%s [y/n]: ", message)
	line, err := c.readLine()
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// Notify shows a titled notice, the console stand-in for a message box.
func (c *Client) Notify(title, message string) {
	fmt.Fprintf(c.out, "[%s] %s\n", title, message)
}

// Run drives login sessions until the input closes or ctx is done.
func (c *Client) Run(ctx context.Context, svc *session.Service) error {
	logger.Info("Start console loop")

	for ctx.Err() == nil {
		username, err := c.prompt(usernamePrompt)
		if err != nil {
			logger.Info("Stop console loop")
			return nil
		}
		password, err := c.prompt(passwordPrompt)
		if err != nil {
			logger.Info("Stop console loop")
			return nil
		}

		sess, err := svc.Login(ctx, username, password)
		if err != nil {
			// the notice, if any, was already shown
			continue
		}

		fmt.Fprintf(c.out, "Welcome, %s!\n", sess.User())
		if err = c.commandLoop(ctx, svc, sess); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) commandLoop(ctx context.Context, svc *session.Service, sess *session.Session) error {
	for sess.Active() && ctx.Err() == nil {
		fmt.Fprint(c.out, commandPrompt)
		line, err := c.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "read command")
		}

		resp, err := svc.HandleCommand(ctx, sess, line)
		if err != nil {
			logger.Error("error processing command:", zap.Error(err))
		}
		if resp != "" {
			fmt.Fprintln(c.out, resp)
		}
	}
	return nil
}

func (c *Client) prompt(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	line, err := c.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Client) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
