package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChannels(t *testing.T) {
	channels, err := ParseChannels([]string{"push", "sound"})
	assert.Nil(t, err)
	assert.True(t, channels.Has(ChannelPush))
	assert.True(t, channels.Has(ChannelSound))
	assert.False(t, channels.Has(ChannelEmail))
}

func TestParseChannelsError(t *testing.T) {
	_, err := ParseChannels([]string{"push", "sms"})
	assert.ErrorIs(t, err, ErrParseChannel)
}

func TestChannelsStringsStableOrder(t *testing.T) {
	channels := NewChannels(ChannelEmail, ChannelPush)
	assert.Equal(t, []string{"push", "email"}, channels.Strings())
}
