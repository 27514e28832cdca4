package state

import (
	"github.com/ratel-online/assistant/consts"
	"github.com/ratel-online/core/log"
)

var states = map[consts.StateID]State{}

func init() {
	register(consts.StateSetup, &setup{})
	register(consts.StateGame, &game{})
}

func register(id consts.StateID, state State) {
	states[id] = state
}

type State interface {
	Apply(client *Client) error
	Next(client *Client) (consts.StateID, error)
}

func Root() consts.StateID {
	return consts.StateSetup
}

// Load drives the client through the registered states until one of them
// fails. Leaving is reported as consts.ErrorsExist.
func Load(client *Client) error {
	var err error
	for {
		state := states[client.GetState()]
		err = state.Apply(client)
		if err != nil {
			log.Error(err)
			break
		}
		stateId, err := state.Next(client)
		if err != nil {
			if err != consts.ErrorsExist {
				log.Error(err)
			}
			return err
		}
		if stateId > 0 {
			client.State(stateId)
		}
	}
	return err
}
