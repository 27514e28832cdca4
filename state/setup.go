package state

import (
	"strings"

	"github.com/ratel-online/assistant/consts"
	"github.com/ratel-online/assistant/input"
	"github.com/ratel-online/assistant/service"
)

type setup struct{}

func (*setup) Apply(client *Client) error {
	return client.Render()
}

func (*setup) Next(client *Client) (consts.StateID, error) {
	line, err := client.AskForString()
	if err != nil {
		return 0, client.closed(err)
	}
	cmd, arg := command(line)
	switch cmd {
	case "":
	case "quit", "exit":
		return 0, client.leave()
	case "mode":
		mode, err := input.ParseMode(arg)
		if err != nil {
			return 0, client.WriteError(err)
		}
		_ = client.session.Input.Select(mode)
	case "start":
		req, err := askForStart(client, arg)
		if err != nil {
			return 0, err
		}
		if req == nil {
			return 0, client.WriteString(consts.MsgStartUsage)
		}
		_ = client.session.Start(client.ctx, *req)
		if client.session.Phase() != consts.StateUnconfigured {
			client.warned = false
			return consts.StateGame, nil
		}
	default:
		return 0, client.WriteError(consts.ErrorsInputInvalid)
	}
	return 0, nil
}

// askForStart collects role, hand and landlord cards. Values missing from the
// command line are asked for one per line, so card text may contain spaces.
// A nil request means the line could not be split unambiguously.
func askForStart(client *Client, arg string) (*service.StartRequest, error) {
	if strings.Contains(arg, "|") {
		parts := strings.Split(arg, "|")
		if len(parts) != 3 {
			return nil, nil
		}
		return &service.StartRequest{Role: parts[0], Hand: parts[1], LandlordCards: parts[2]}, nil
	}
	fields := strings.Fields(arg)
	switch len(fields) {
	case 3:
		return &service.StartRequest{Role: fields[0], Hand: fields[1], LandlordCards: fields[2]}, nil
	case 0, 1:
	default:
		return nil, nil
	}

	req := &service.StartRequest{}
	var err error
	if len(fields) == 1 {
		req.Role = fields[0]
	} else if req.Role, err = askFor(client, consts.MsgAskRole); err != nil {
		return nil, err
	}
	if req.Hand, err = askFor(client, consts.MsgAskHand); err != nil {
		return nil, err
	}
	if req.LandlordCards, err = askFor(client, consts.MsgAskLandlordCards); err != nil {
		return nil, err
	}
	return req, nil
}

func askFor(client *Client, prompt string) (string, error) {
	if err := client.WriteString(prompt); err != nil {
		return "", err
	}
	line, err := client.AskForString()
	if err != nil {
		return "", client.closed(err)
	}
	return line, nil
}
