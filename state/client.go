package state

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/ratel-online/assistant/consts"
	"github.com/ratel-online/assistant/render"
	"github.com/ratel-online/assistant/service"
	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/util/async"
)

// Client is one interactive terminal bound to a session.
type Client struct {
	ctx        context.Context
	session    *service.Session
	terminal   *render.Terminal
	state      consts.StateID
	data       chan string
	interrupts chan struct{}
	warned     bool
}

func NewClient(ctx context.Context, session *service.Session, terminal *render.Terminal) *Client {
	return &Client{
		ctx:        ctx,
		session:    session,
		terminal:   terminal,
		state:      Root(),
		data:       make(chan string, 8),
		interrupts: make(chan struct{}, 1),
	}
}

// Run reads commands from r until the client leaves.
func (c *Client) Run(r io.Reader) error {
	async.Async(func() {
		if err := c.Listening(r); err != nil {
			log.Error(err)
		}
	})
	err := Load(c)
	if err == consts.ErrorsExist {
		return nil
	}
	return err
}

// Listening feeds lines into the client and closes it at end of input.
func (c *Client) Listening(r io.Reader) error {
	defer close(c.data)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		c.data <- scanner.Text()
	}
	return scanner.Err()
}

// Interrupt asks the client to quit, as if quit had been typed.
func (c *Client) Interrupt() {
	select {
	case c.interrupts <- struct{}{}:
	default:
	}
}

func (c *Client) AskForString() (string, error) {
	select {
	case line, ok := <-c.data:
		if !ok {
			return "", consts.ErrorsChanClosed
		}
		return strings.TrimSpace(line), nil
	case <-c.interrupts:
		return "quit", nil
	}
}

func (c *Client) WriteString(data string) error {
	return c.terminal.Line(c.session.Store.Formatter().Format(data))
}

func (c *Client) WriteError(err error) error {
	if err == consts.ErrorsExist {
		return err
	}
	return c.WriteString(err.Error())
}

func (c *Client) Render() error {
	return c.terminal.Render(c.session.RenderModel())
}

func (c *Client) State(s consts.StateID) {
	c.state = s
}

func (c *Client) GetState() consts.StateID {
	return c.state
}

// leave returns consts.ErrorsExist once the client may go. A game still in
// play has to be left twice in a row.
func (c *Client) leave() error {
	if !c.session.Store.ShouldWarnOnLeave() || c.warned {
		return consts.ErrorsExist
	}
	c.warned = true
	return c.WriteString(consts.MsgLeaveWarning)
}

// closed handles the end of input. There is no second chance to confirm, so a
// live game only gets the warning.
func (c *Client) closed(err error) error {
	if err != consts.ErrorsChanClosed {
		return err
	}
	if c.session.Store.ShouldWarnOnLeave() {
		_ = c.WriteString(consts.MsgLeaveWarning)
	}
	return consts.ErrorsExist
}

func command(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return strings.ToLower(parts[0]), arg
}
