package tui

import (
	"fmt"
	"strings"
)

// Channel is one of the eight basic terminal colors, stored as a 3-bit index.
type Channel uint8

const (
	Black Channel = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

var channelNames = [...]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// ChannelFromIndex converts a palette index to a Channel.
// Panics if i is outside 0-7; an out-of-range index is a programming error.
func ChannelFromIndex(i int) Channel {
	if i < 0 || i > 7 {
		panic(fmt.Sprintf("tui: color out of range: %d", i))
	}
	return Channel(i)
}

// ParseChannel returns the Channel named by s (case-insensitive).
func ParseChannel(s string) (Channel, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range channelNames {
		if n == name {
			return Channel(i), true
		}
	}
	return 0, false
}

// ChannelNames lists the channel names in index order.
func ChannelNames() []string {
	return append([]string(nil), channelNames[:]...)
}

// String returns the lower-case color name.
func (c Channel) String() string {
	if int(c) < len(channelNames) {
		return channelNames[c]
	}
	return fmt.Sprintf("channel(%d)", uint8(c))
}

// Token packs a foreground/background pair and the emphasis flag into one byte:
//
//	bit 7     set once colors are explicitly assigned
//	bits 4-6  background index
//	bit 3     emphasis
//	bits 0-2  foreground index
//
// The zero Token means "use the surface's default pair".
type Token uint8

const (
	tokenSet      Token = 1 << 7
	tokenEmphasis Token = 1 << 3
	channelMask         = 7
)

// Encode packs fg and bg into a Token with the explicit-color bit set.
// Panics if either channel is outside 0-7.
func Encode(fg, bg Channel) Token {
	fg, bg = ChannelFromIndex(int(fg)), ChannelFromIndex(int(bg))
	return tokenSet | Token(bg)<<4 | Token(fg)
}

// EncodeEmphasized is Encode with the emphasis bit set.
func EncodeEmphasized(fg, bg Channel) Token {
	return Encode(fg, bg).WithEmphasis()
}

// Decode unpacks the foreground and background channels.
func (t Token) Decode() (fg, bg Channel) {
	return Channel(t & channelMask), Channel((t >> 4) & channelMask)
}

// IsSet reports whether colors were explicitly assigned.
func (t Token) IsSet() bool {
	return t&tokenSet != 0
}

// IsEmphasized reports whether bit 3 is set.
func (t Token) IsEmphasized() bool {
	return t&tokenEmphasis != 0
}

// WithEmphasis returns t with the emphasis bit set.
func (t Token) WithEmphasis() Token {
	return t | tokenEmphasis
}

// Pair returns the token with the emphasis bit cleared.
// Drivers register one color pair per distinct Pair value.
func (t Token) Pair() Token {
	return t &^ tokenEmphasis
}

func (t Token) String() string {
	if !t.IsSet() {
		return "default"
	}
	fg, bg := t.Decode()
	s := fg.String() + "/" + bg.String()
	if t.IsEmphasized() {
		s += "+emphasis"
	}
	return s
}

// AllTokens enumerates every foreground/background combination, background-major.
func AllTokens() []Token {
	tokens := make([]Token, 0, 64)
	for bg := Black; bg <= White; bg++ {
		for fg := Black; fg <= White; fg++ {
			tokens = append(tokens, Encode(fg, bg))
		}
	}
	return tokens
}
