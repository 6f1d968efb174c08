package reminder

import "errors"

var ErrParseChannel = errors.New("invalid notification channel")

// Channel is a delivery channel a reminder is authorized for.
type Channel struct {
	v string
}

func (c Channel) String() string {
	return c.v
}

func ParseChannel(value string) (Channel, error) {
	switch value {
	case "push":
		return ChannelPush, nil
	case "sound":
		return ChannelSound, nil
	case "email":
		return ChannelEmail, nil
	default:
		return ChannelUnknown, ErrParseChannel
	}
}

var (
	ChannelUnknown = Channel{}
	ChannelPush    = Channel{v: "push"}
	ChannelSound   = Channel{v: "sound"}
	ChannelEmail   = Channel{v: "email"}
)

type Channels map[Channel]struct{}

func NewChannels(channels ...Channel) Channels {
	set := make(Channels, len(channels))
	for _, ch := range channels {
		set[ch] = struct{}{}
	}
	return set
}

func (c Channels) Has(ch Channel) bool {
	_, ok := c[ch]
	return ok
}

func (c Channels) Strings() []string {
	values := make([]string, 0, len(c))
	for _, ch := range []Channel{ChannelPush, ChannelSound, ChannelEmail} {
		if c.Has(ch) {
			values = append(values, ch.String())
		}
	}
	return values
}

func ParseChannels(values []string) (Channels, error) {
	set := make(Channels, len(values))
	for _, v := range values {
		ch, err := ParseChannel(v)
		if err != nil {
			return nil, err
		}
		set[ch] = struct{}{}
	}
	return set, nil
}
