package runtime

import (
	"github.com/dnek/mines/internal/operation"
	"github.com/dnek/mines/internal/player"
)

// State bundles everything a command needs to read or mutate: the player,
// the program's operation pointer, a FIFO queue used by perform/reset
// commands, the stack, and the input/output buffers.
type State struct {
	Player           *player.Player
	OperationPointer *OperationPointer
	OperationQueue   []operation.Operation
	Stack            *Stack
	InputBuffer      *InputBuffer
	OutputBuffer     *OutputBuffer
}

// NewState assembles a fresh runtime state.
func NewState(p *player.Player, pointer *OperationPointer, input *InputBuffer, output *OutputBuffer) *State {
	return &State{
		Player:           p,
		OperationPointer: pointer,
		OperationQueue:   nil,
		Stack:            NewStack(),
		InputBuffer:      input,
		OutputBuffer:     output,
	}
}
