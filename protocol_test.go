package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horde-server/sim"
)

// encodeBinaryInput builds the frame a browser client sends. Coordinates are
// clamped to int16.
func encodeBinaryInput(in ClientInput) []byte {
	var flags byte
	for _, f := range []struct {
		on  bool
		bit byte
	}{
		{in.Up, FlagUp}, {in.Down, FlagDown}, {in.Left, FlagLeft},
		{in.Right, FlagRight}, {in.Fire, FlagFire}, {in.HasAim, FlagCursor},
	} {
		if f.on {
			flags |= f.bit
		}
	}
	cx := uint16(int16(min(max(in.CursorX, -32768), 32767)))
	cy := uint16(int16(min(max(in.CursorY, -32768), 32767)))
	return []byte{binaryInputTag, flags, byte(cx >> 8), byte(cx), byte(cy >> 8), byte(cy)}
}

func TestBinaryInputRoundTrip(t *testing.T) {
	in := ClientInput{Up: true, Right: true, Fire: true, HasAim: true, CursorX: -1200, CursorY: 345}
	frame := encodeBinaryInput(in)
	require.Len(t, frame, binaryInputLen)
	assert.Equal(t, byte(binaryInputTag), frame[0])
	assert.Equal(t, byte(FlagUp|FlagRight|FlagFire|FlagCursor), frame[1])

	out, err := DecodeBinaryInput(frame)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestBinaryInputClampsCursor(t *testing.T) {
	out, err := DecodeBinaryInput(encodeBinaryInput(ClientInput{HasAim: true, CursorX: 1e6, CursorY: -1e6}))
	require.NoError(t, err)
	assert.Equal(t, 32767.0, out.CursorX)
	assert.Equal(t, -32768.0, out.CursorY)
}

func TestDecodeBinaryInputSignedCursor(t *testing.T) {
	in, err := DecodeBinaryInput([]byte{binaryInputTag, FlagDown | FlagCursor, 0xFF, 0x38, 0x00, 0x64})
	require.NoError(t, err)
	assert.Equal(t, ClientInput{Down: true, HasAim: true, CursorX: -200, CursorY: 100}, in)
}

func TestBinaryInputRejectsBadFrames(t *testing.T) {
	for name, frame := range map[string][]byte{
		"empty":   nil,
		"short":   {binaryInputTag, FlagUp},
		"long":    {binaryInputTag, 0, 0, 0, 0, 0, 0},
		"bad tag": {0x02, 0, 0, 0, 0, 0},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeBinaryInput(frame)
			assert.Error(t, err)
		})
	}
}

func TestTickInputCursor(t *testing.T) {
	in, cursor := ClientInput{Left: true, CursorX: 9}.TickInput()
	assert.Equal(t, sim.Input{Left: true}, in)
	assert.Nil(t, cursor, "cursor outside the window is absent")

	in, cursor = ClientInput{Down: true, Fire: true, HasAim: true, CursorX: 100, CursorY: -5}.TickInput()
	assert.Equal(t, sim.Input{Down: true, Fire: true}, in)
	require.NotNil(t, cursor)
	assert.Equal(t, sim.V(100, -5), *cursor)
}
