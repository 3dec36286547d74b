package runtime

import (
	"fmt"

	"github.com/dnek/mines/internal/board"
	"github.com/dnek/mines/internal/operation"
	"github.com/dnek/mines/internal/player"
)

var openedOnLeftClick = map[board.Digit]Command{
	0: PopCommand,
	1: PositiveCommand,
	2: DupCommand,
	3: AddCommand,
	4: SubCommand,
	5: MulCommand,
	6: DivCommand,
	7: ModCommand,
	8: PerformLCommand,
}

var openedOnRightClickNoChord = map[board.Digit]Command{
	0: PushNCommand,
	1: NotCommand,
	2: RollCommand,
	3: InNCommand,
	4: InCCommand,
	5: OutNCommand,
	6: OutCCommand,
	7: SkipCommand,
	8: PerformRCommand,
}

func selectClickOnOpenedCommand(clickResult *operation.ClickResult, clickedDigit board.Digit) Command {
	if clickResult.OpenResult != nil {
		if clickResult.OpenResult.Over {
			return ResetRCommand
		}
		return PushSumCommand
	}

	table := openedOnRightClickNoChord
	if clickResult.IsLeftClick {
		table = openedOnLeftClick
	}
	cmd, ok := table[clickedDigit]
	if !ok {
		panic(fmt.Sprintf("command selector: clicked digit %d is invalid on an opened cell", clickedDigit))
	}
	return cmd
}

func selectClickCommand(click operation.Click, p *player.Player) Command {
	clickResult := p.LastClickResult()
	if clickResult == nil {
		panic("command selector: click result is nil")
	}

	clickedDigit := p.CellDigit(click.Cell)

	switch clickResult.PreviousCellState {
	case board.Unopened:
		if clickResult.IsLeftClick {
			switch clickedDigit {
			case 0:
				return PushCountCommand
			case board.DigitMine:
				return ResetLCommand
			default:
				return PushNCommand
			}
		}
		return SwapCommand
	case board.Flagged:
		if clickResult.IsLeftClick {
			return NoopCommand
		}
		return SwapCommand
	case board.Opened:
		return selectClickOnOpenedCommand(clickResult, clickedDigit)
	default:
		panic(fmt.Sprintf("command selector: invalid previous cell state %v", clickResult.PreviousCellState))
	}
}

// SelectCommand deterministically maps an operation and the player's
// resulting click state to exactly one of the 25 commands.
func SelectCommand(op operation.Operation, p *player.Player) Command {
	switch o := op.(type) {
	case operation.NoOp:
		return NoopCommand
	case operation.Restart:
		return NoopCommand
	case operation.Switch:
		return ReverseCommand
	case operation.Click:
		return selectClickCommand(o, p)
	default:
		panic(fmt.Sprintf("command selector: unknown operation type %T", op))
	}
}
