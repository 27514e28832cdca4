package state

import (
	"github.com/ratel-online/assistant/consts"
	"github.com/ratel-online/assistant/input"
)

type game struct{}

func (*game) Apply(client *Client) error {
	return client.Render()
}

func (*game) Next(client *Client) (consts.StateID, error) {
	line, err := client.AskForString()
	if err != nil {
		return 0, client.closed(err)
	}
	s := client.session
	cmd, arg := command(line)
	if cmd != "quit" && cmd != "exit" {
		client.warned = false
	}
	ctx := client.ctx
	switch cmd {
	case "", "show":
	case "quit", "exit":
		return 0, client.leave()
	case "mode":
		mode, err := input.ParseMode(arg)
		if err != nil {
			return 0, client.WriteError(err)
		}
		_ = s.Input.Select(mode)
	case "+":
		if err := s.Input.Tally.Increment(arg); err != nil {
			return 0, client.WriteError(err)
		}
	case "-":
		if err := s.Input.Tally.Decrement(arg); err != nil {
			return 0, client.WriteError(err)
		}
	case "clear":
		s.Input.Clear()
	case "submit":
		_ = s.Submit(ctx)
	case "pass":
		_ = s.Pass(ctx)
	case "recommend":
		_ = s.UseRecommendation(ctx)
	case "undo":
		_ = s.Undo(ctx)
	case "refresh":
		_ = s.Refresh(ctx)
	case "restart":
		s.Reset()
		return consts.StateSetup, nil
	default:
		if s.Input.Mode() != consts.InputModeText {
			return 0, client.WriteError(consts.ErrorsInputInvalid)
		}
		s.Input.SetText(line)
		_ = s.Submit(ctx)
	}
	return 0, nil
}
