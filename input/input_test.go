package input_test

import (
	"testing"

	"github.com/ratel-online/assistant/consts"
	"github.com/ratel-online/assistant/input"
	"github.com/stretchr/testify/require"
)

func TestDefaultModeIsText(t *testing.T) {
	selector := input.NewSelector()
	require.Equal(t, consts.InputModeText, selector.Mode())
	text, click := selector.Panels()
	require.True(t, text)
	require.False(t, click)
}

func TestSelectShowsExactlyOnePanel(t *testing.T) {
	selector := input.NewSelector()
	require.NoError(t, selector.Select(consts.InputModeClick))
	text, click := selector.Panels()
	require.False(t, text)
	require.True(t, click)

	require.Equal(t, consts.ErrorsInputModeInvalid, selector.Select("voice"))
	require.Equal(t, consts.InputModeClick, selector.Mode())
}

func TestParseMode(t *testing.T) {
	mode, err := input.ParseMode(" Click ")
	require.NoError(t, err)
	require.Equal(t, consts.InputModeClick, mode)
	_, err = input.ParseMode("buttons")
	require.Equal(t, consts.ErrorsInputModeInvalid, err)
}

func TestSwitchingModeKeepsPendingInput(t *testing.T) {
	buffer := input.NewBuffer()
	require.NoError(t, buffer.Select(consts.InputModeClick))
	require.NoError(t, buffer.Tally.Increment("5"))
	require.NoError(t, buffer.Select(consts.InputModeText))
	buffer.SetText("KK")
	require.NoError(t, buffer.Select(consts.InputModeClick))

	require.Equal(t, "5", buffer.Preview())
	require.Equal(t, "KK", buffer.Text())
}

func TestClearKeepsMode(t *testing.T) {
	buffer := input.NewBuffer()
	require.NoError(t, buffer.Select(consts.InputModeClick))
	require.NoError(t, buffer.Tally.Increment("2"))
	buffer.SetText("22")
	buffer.Clear()

	require.Equal(t, consts.Pass, buffer.Preview())
	require.Empty(t, buffer.Text())
	require.Equal(t, consts.InputModeClick, buffer.Mode())
}
